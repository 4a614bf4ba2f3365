package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RafaelCassiano30011/box-menager/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertWorker mails low-stock notifications to the configured address.
type AlertWorker struct {
	mailer *infra.Mailer
	to     string
}

func NewAlertWorker(mailer *infra.Mailer, to string) *AlertWorker {
	return &AlertWorker{mailer: mailer, to: to}
}

func (w *AlertWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var alert LowStockAlert
	if err := json.Unmarshal(payload, &alert); err != nil {
		return err
	}
	if w.to == "" {
		log.Debug().Str("product", alert.Name).Msg("no alert email configured, dropping low-stock alert")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s", alert.Name)
	body := fmt.Sprintf(
		"Product %q is down to %d units (minimum %d). Restock soon.",
		alert.Name, alert.TotalStock, alert.MinStock,
	)
	return w.mailer.Send(w.to, subject, body)
}
