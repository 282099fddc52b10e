package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/marketsantafe/leads-api/internal/entity"
)

// AlertSender define el contrato del envío de alerta a la inmobiliaria.
type AlertSender interface {
	SendNewLeadAlert(to, tenantName, leadName, flowType, whatsapp string) error
}

// Worker consume q.lead.alerts y le avisa por mail a la inmobiliaria que
// entró un lead nuevo. La notificación del panel ya quedó escrita en la
// transacción del submit; esto es fan-out best-effort.
type Worker struct {
	Channel    *amqp.Channel
	TenantRepo entity.TenantRepositoryInterface
	Mailer     AlertSender
}

func NewWorker(ch *amqp.Channel, tenantRepo entity.TenantRepositoryInterface, mailer AlertSender) *Worker {
	return &Worker{Channel: ch, TenantRepo: tenantRepo, Mailer: mailer}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual, más seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ Falla registrando consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadSubmittedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON inválido: %s", err)
				// Mensaje podrido: rechazar sin requeue para no trabar la cola.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Lead %d (%s) para tenant %d", payload.LeadID, payload.FlowType, payload.TenantID)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Error enviando alerta: %s", err)
				d.Nack(false, false) // va a la DLQ
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de alertas escuchando en '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload LeadSubmittedPayload) error {
	tenant, err := w.TenantRepo.FindByID(ctx, payload.TenantID)
	if err != nil {
		return err
	}

	if tenant.ContactEmail == "" {
		// Sin casilla configurada no hay nada para mandar; Ack igual.
		log.Printf("⚠️ [WORKER] Tenant %d sin contact_email, alerta omitida", tenant.ID)
		return nil
	}

	return w.Mailer.SendNewLeadAlert(tenant.ContactEmail, tenant.Name, payload.Name, payload.FlowType, payload.Whatsapp)
}
