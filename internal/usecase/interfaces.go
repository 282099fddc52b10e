package usecase

import (
	"context"

	"github.com/marketsantafe/leads-api/internal/infra/queue"
)

type QueueProducerInterface interface {
	PublishLeadSubmitted(ctx context.Context, payload queue.LeadSubmittedPayload) error
}

// Pagination es el bloque que acompaña a toda respuesta de inbox.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
