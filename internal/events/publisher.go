package events

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const (
	SubjectStudentCreated    = "student.created"
	SubjectAssignmentCreated = "assignment.created"
	SubjectAssignmentGraded  = "assignment.graded"
	SubjectClassScheduled    = "class.scheduled"
	SubjectResourceCreated   = "resource.created"
)

// Publisher emits domain events. Implementations never fail the caller.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{})
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, string, interface{}) {}

// Conn is the subset of *nats.Conn used for publishing.
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes JSON-encoded events under a subject prefix.
type NATSPublisher struct {
	conn   Conn
	prefix string
	logger zerolog.Logger
}

// NewNATSPublisher wraps an established connection.
func NewNATSPublisher(conn Conn, prefix string, logger zerolog.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:   conn,
		prefix: strings.Trim(strings.TrimSpace(prefix), "."),
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

// Subject returns the fully qualified subject for name.
func (p *NATSPublisher) Subject(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

// Publish implements Publisher.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload interface{}) {
	full := p.Subject(subject)

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", full).Msg("failed to encode event")
		return
	}

	if err := p.conn.Publish(full, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", full).Msg("failed to publish event")
	}
}

// Connect dials NATS when url is set and returns a matching publisher.
// An empty url yields Nop and a nil connection.
func Connect(url, prefix string, logger zerolog.Logger) (Publisher, *nats.Conn, error) {
	if strings.TrimSpace(url) == "" {
		return Nop{}, nil, nil
	}

	conn, err := nats.Connect(url, nats.Name("tutoring-api"))
	if err != nil {
		return nil, nil, err
	}

	return NewNATSPublisher(conn, prefix, logger), conn, nil
}
