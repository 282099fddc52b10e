package usecase

import (
	"strings"

	"github.com/marketsantafe/leads-api/internal/entity"
)

// ValidateSubmission aplica las reglas de cierre del wizard sobre el form
// plano. Devuelve TODOS los mensajes juntos para que el front los muestre de
// una sola vez; nada se persiste si la lista no viene vacía.
func ValidateSubmission(flowType string, form map[string]string) []string {
	var errs []string

	if formValue(form, "nombre", "name") == "" {
		errs = append(errs, "el nombre es obligatorio")
	}
	if formValue(form, "whatsapp", "telefono") == "" {
		errs = append(errs, "necesitamos un WhatsApp o teléfono de contacto")
	}

	switch flowType {
	case entity.FlowAlquilar:
		if formValue(form, "zona") == "" {
			errs = append(errs, "la zona es obligatoria")
		}
		if formValue(form, "presupuesto") == "" {
			errs = append(errs, "el presupuesto mensual es obligatorio")
		}
	case entity.FlowComprar:
		if formValue(form, "zona") == "" {
			errs = append(errs, "la zona es obligatoria")
		}
		if formValue(form, "presupuesto_min") == "" && formValue(form, "presupuesto_max") == "" {
			errs = append(errs, "indicá al menos un extremo del rango de presupuesto")
		}
	case entity.FlowVender, entity.FlowTasacion:
		if formValue(form, "direccion") == "" {
			errs = append(errs, "la dirección de la propiedad es obligatoria")
		}
		if formValue(form, "tipo") == "" {
			errs = append(errs, "el tipo de propiedad es obligatorio")
		}
	}

	// Numéricos provistos pero imposibles de parsear: acá sí son error.
	// Durante el autosave el mismo valor se proyecta como NULL sin quejarse.
	for _, key := range numericSteps {
		raw := formValue(form, key)
		if raw == "" {
			continue
		}
		if _, ok := CoerceField(fieldSchema[key], raw); !ok {
			errs = append(errs, key+": no es un número válido")
		}
	}

	return errs
}

// En orden fijo para que la lista de errores sea estable.
var numericSteps = []string{"presupuesto", "presupuesto_min", "presupuesto_max", "dormitorios", "m2"}

// formValue devuelve el primer valor no vacío entre las claves dadas.
func formValue(form map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := form[k]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
