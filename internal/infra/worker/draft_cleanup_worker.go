package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// DraftCleanupWorker purga borradores abandonados. Borra (no descarta): un
// lead discarded con submitted_at NULL rompería el invariante
// draft <=> sin submitted_at. Los steps caen por el mismo DELETE.
type DraftCleanupWorker struct {
	db           *sql.DB
	maxDraftAge  time.Duration
	tickInterval time.Duration
}

func NewDraftCleanupWorker(db *sql.DB) *DraftCleanupWorker {
	return &DraftCleanupWorker{
		db:           db,
		maxDraftAge:  30 * 24 * time.Hour, // un mes sin tocar el wizard
		tickInterval: time.Hour,
	}
}

func (w *DraftCleanupWorker) Start(ctx context.Context) {
	log.Println("🕒 Draft cleanup worker iniciado (ventana 30 días)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.purgeStale(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Draft cleanup worker detenido")
			return
		case <-ticker.C:
			w.purgeStale(ctx)
		}
	}
}

func (w *DraftCleanupWorker) purgeStale(ctx context.Context) {
	stepsQuery := `
		DELETE FROM lead_steps
		WHERE lead_id IN (
			SELECT id FROM leads
			WHERE status = 'draft' AND updated_at < NOW() - INTERVAL '30 days'
		)
	`
	if _, err := w.db.ExecContext(ctx, stepsQuery); err != nil {
		log.Printf("❌ Error purgando steps de borradores: %v", err)
		return
	}

	leadsQuery := `
		DELETE FROM leads
		WHERE status = 'draft' AND updated_at < NOW() - INTERVAL '30 days'
		RETURNING id
	`
	rows, err := w.db.QueryContext(ctx, leadsQuery)
	if err != nil {
		log.Printf("❌ Error purgando borradores: %v", err)
		return
	}
	defer rows.Close()

	purged := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Printf("⚠️ Error escaneando borrador purgado: %v", err)
			continue
		}
		purged++
	}

	if purged > 0 {
		log.Printf("🧹 %d borradores viejos purgados", purged)
	}
}
