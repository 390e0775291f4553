package infrastructure

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"lotto/domain/events"
	"lotto/domain/interfaces"
)

// subjectPrefix namespaces all event subjects on the bus
const subjectPrefix = "lotto.events"

// eventEnvelope is the wire format for published events
type eventEnvelope struct {
	EventID    string           `json:"event_id"`
	EventType  events.EventType `json:"event_type"`
	OccurredAt time.Time        `json:"occurred_at"`
	Payload    events.Event     `json:"payload"`
}

// NATSEventPublisher publishes domain events to NATS as JSON envelopes
type NATSEventPublisher struct {
	nc *nats.Conn
}

// NewNATSEventPublisher connects to NATS and returns a publisher
func NewNATSEventPublisher(servers string) (*NATSEventPublisher, error) {
	opts := []nats.Option{
		nats.Name("lotto"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(servers, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.WithField("servers", servers).Info("Connected to NATS")
	return &NATSEventPublisher{nc: nc}, nil
}

// Publish serializes the event and publishes it on a per-type subject
func (p *NATSEventPublisher) Publish(event events.Event) error {
	envelope := eventEnvelope{
		EventID:    uuid.New().String(),
		EventType:  event.Type(),
		OccurredAt: time.Now().UTC(),
		Payload:    event,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type(), err)
	}

	subject := fmt.Sprintf("%s.%s", subjectPrefix, event.Type())
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}

	log.WithFields(log.Fields{
		"subject": subject,
		"eventID": envelope.EventID,
	}).Debug("Published event")
	return nil
}

// Close drains and closes the NATS connection
func (p *NATSEventPublisher) Close() {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			log.WithError(err).Warn("Failed to drain NATS connection")
		}
	}
}

var _ interfaces.EventPublisher = (*NATSEventPublisher)(nil)
