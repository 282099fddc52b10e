package usecase

import (
	"strconv"
	"strings"

	"github.com/marketsantafe/leads-api/internal/entity"
)

// El wizard es una tabla declarativa: flow_type -> pasos ordenados, y
// step_key -> columna normalizada + tipo. Autosave y submit coercionan con
// el MISMO schema para no duplicar parseos sueltos por los handlers.

type FieldKind string

const (
	FieldText    FieldKind = "text"
	FieldMoney   FieldKind = "money"
	FieldInteger FieldKind = "integer"
)

type FieldSpec struct {
	Column string
	Kind   FieldKind
}

// fieldSchema: claves de step que se proyectan sobre la fila del lead.
// Cualquier otra clave queda sólo en el step log.
var fieldSchema = map[string]FieldSpec{
	"zona":            {Column: "zone", Kind: FieldText},
	"tipo":            {Column: "property_type", Kind: FieldText},
	"presupuesto_min": {Column: "budget_min", Kind: FieldMoney},
	"presupuesto_max": {Column: "budget_max", Kind: FieldMoney},
	"presupuesto":     {Column: "budget", Kind: FieldMoney},
	"dormitorios":     {Column: "bedrooms", Kind: FieldInteger},
	"m2":              {Column: "area_m2", Kind: FieldMoney},
	"estado":          {Column: "condition", Kind: FieldText},
	"direccion":       {Column: "address", Kind: FieldText},
	"nombre":          {Column: "name", Kind: FieldText},
	"telefono":        {Column: "whatsapp", Kind: FieldText},
	"email":           {Column: "email", Kind: FieldText},
}

// FieldSchema expone el spec de un step conocido.
func FieldSchema(stepKey string) (FieldSpec, bool) {
	spec, ok := fieldSchema[stepKey]
	return spec, ok
}

// CoerceField normaliza el valor crudo al tipo de la columna destino.
// Numéricos imposibles de parsear devuelven (nil, false): el autosave los
// proyecta como NULL, el submit los trata como error de validación.
func CoerceField(spec FieldSpec, raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}

	switch spec.Kind {
	case FieldMoney:
		f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	case FieldInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		return raw, true
	}
}

type WizardStep struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`
	Kind     FieldKind `json:"kind"`
}

var contactSteps = []WizardStep{
	{Key: "nombre", Label: "¿Cómo te llamás?", Required: true, Kind: FieldText},
	{Key: "telefono", Label: "Tu WhatsApp", Required: true, Kind: FieldText},
	{Key: "email", Label: "Tu email (opcional)", Kind: FieldText},
}

var flowSteps = map[string][]WizardStep{
	entity.FlowAlquilar: append([]WizardStep{
		{Key: "zona", Label: "¿En qué zona buscás?", Required: true, Kind: FieldText},
		{Key: "presupuesto", Label: "Presupuesto mensual", Required: true, Kind: FieldMoney},
		{Key: "dormitorios", Label: "Dormitorios", Kind: FieldInteger},
		{Key: "tipo", Label: "Tipo de propiedad", Kind: FieldText},
	}, contactSteps...),

	entity.FlowComprar: append([]WizardStep{
		{Key: "zona", Label: "¿En qué zona buscás?", Required: true, Kind: FieldText},
		{Key: "presupuesto_min", Label: "Presupuesto desde", Kind: FieldMoney},
		{Key: "presupuesto_max", Label: "Presupuesto hasta", Kind: FieldMoney},
		{Key: "dormitorios", Label: "Dormitorios", Kind: FieldInteger},
		{Key: "tipo", Label: "Tipo de propiedad", Kind: FieldText},
	}, contactSteps...),

	entity.FlowVender: append([]WizardStep{
		{Key: "direccion", Label: "Dirección de la propiedad", Required: true, Kind: FieldText},
		{Key: "tipo", Label: "Tipo de propiedad", Required: true, Kind: FieldText},
		{Key: "m2", Label: "Superficie (m²)", Kind: FieldMoney},
		{Key: "estado", Label: "Estado general", Kind: FieldText},
		{Key: "presupuesto", Label: "¿Cuánto esperás obtener?", Kind: FieldMoney},
	}, contactSteps...),

	entity.FlowTasacion: append([]WizardStep{
		{Key: "direccion", Label: "Dirección de la propiedad", Required: true, Kind: FieldText},
		{Key: "tipo", Label: "Tipo de propiedad", Required: true, Kind: FieldText},
		{Key: "m2", Label: "Superficie (m²)", Kind: FieldMoney},
		{Key: "estado", Label: "Estado general", Kind: FieldText},
	}, contactSteps...),

	entity.FlowContacto: contactSteps,
}

// FlowSteps devuelve los pasos del wizard para un flujo dado.
func FlowSteps(flowType string) ([]WizardStep, bool) {
	steps, ok := flowSteps[flowType]
	return steps, ok
}
