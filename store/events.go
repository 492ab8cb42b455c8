package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Event subjects.
const (
	SubjectSnapshotSwapped = "semshape.snapshot.swapped"
	SubjectQuarantined     = "semshape.schema.quarantined"
)

// SnapshotEvent announces a snapshot swap.
type SnapshotEvent struct {
	Version     string    `json:"version"`
	Documents   int       `json:"documents"`
	Quarantined int       `json:"quarantined"`
	BuiltAt     time.Time `json:"built_at"`
}

// Publisher emits store events to NATS. A nil Publisher or a Publisher
// without a connection publishes nothing; the store works without a broker.
type Publisher struct {
	nc *nats.Conn
}

// NewPublisher wraps an optional NATS connection.
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// PublishSnapshot announces that a new snapshot became current.
func (p *Publisher) PublishSnapshot(snap *Snapshot) error {
	return p.publish(SubjectSnapshotSwapped, SnapshotEvent{
		Version:     snap.Version,
		Documents:   len(snap.Paths()),
		Quarantined: len(snap.Quarantine()),
		BuiltAt:     snap.BuiltAt,
	})
}

// PublishQuarantine announces one quarantined document.
func (p *Publisher) PublishQuarantine(rec QuarantineRecord) error {
	return p.publish(SubjectQuarantined, rec)
}

func (p *Publisher) publish(subject string, v any) error {
	if p == nil || p.nc == nil {
		return nil // graceful degradation without a broker
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
