package pricing

import (
	"context"
	"encoding/json"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
)

// EventTypePriceListUpdated tags messages emitted after a successful
// price list submission.
const EventTypePriceListUpdated = "price_list.updated"

// PriceListUpdatedEvent is the published payload. Applied counts entries
// per operation state.
type PriceListUpdatedEvent struct {
	EventID    string         `json:"eventId"`
	VendorID   uuid.UUID      `json:"vendorId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Applied    map[string]int `json:"applied"`
}

// EventPublisher notifies downstream consumers about price list changes.
type EventPublisher interface {
	PriceListUpdated(ctx context.Context, event PriceListUpdatedEvent) error
}

type pubsubPublisher struct {
	pub  *pubsub.Publisher
	logg *logger.Logger
}

// NewEventPublisher wraps a Pub/Sub publisher handle. A nil handle yields
// a no-op publisher, which keeps local runs without GCP working.
func NewEventPublisher(pub *pubsub.Publisher, logg *logger.Logger) EventPublisher {
	if pub == nil {
		return noopPublisher{}
	}
	return &pubsubPublisher{pub: pub, logg: logg}
}

func (p *pubsubPublisher) PriceListUpdated(ctx context.Context, event PriceListUpdatedEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal price list event")
	}

	res := p.pub.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_type": EventTypePriceListUpdated,
			"vendor_id":  event.VendorID.String(),
		},
	})
	if _, err := res.Get(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish price list event")
	}

	if p.logg != nil {
		fields := map[string]any{
			"event_id":   event.EventID,
			"event_type": EventTypePriceListUpdated,
			"vendor_id":  event.VendorID.String(),
		}
		p.logg.Info(p.logg.WithFields(ctx, fields), "price list event published")
	}
	return nil
}

type noopPublisher struct{}

func (noopPublisher) PriceListUpdated(context.Context, PriceListUpdatedEvent) error { return nil }
