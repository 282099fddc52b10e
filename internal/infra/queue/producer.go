package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadSubmittedPayload es el evento que viaja por ex.leads cuando un lead
// pasa de draft a new. Lo consume el worker de alertas por mail.
type LeadSubmittedPayload struct {
	LeadID         int64  `json:"lead_id"`
	TenantID       int64  `json:"tenant_id"`
	NotificationID string `json:"notification_id"`

	FlowType string `json:"flow_type"`
	Name     string `json:"name"`
	Whatsapp string `json:"whatsapp,omitempty"`
	Email    string `json:"email,omitempty"`
	Zone     string `json:"zone,omitempty"`
	Message  string `json:"message"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadSubmitted(ctx context.Context, payload LeadSubmittedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error serializando payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			MessageId:    uuid.New().String(),
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensaje a disco
		},
	)
	if err != nil {
		return fmt.Errorf("falla publicando en RabbitMQ: %w", err)
	}

	return nil
}
