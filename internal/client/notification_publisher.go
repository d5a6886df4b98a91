package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
	"github.com/pesio-ai/be-hr-leave/internal/logger"
)

// Leave event types.
const (
	EventLeaveSubmitted    = "leave_submitted"
	EventLeaveStepApproved = "leave_step_approved"
	EventLeaveStepRejected = "leave_step_rejected"
)

// NotificationPublisher publishes leave workflow events to NATS.
//
// Subject convention: <prefix>.<event_type>
//
// Publishing is best effort: errors are logged and never returned, so a
// broker outage cannot block an approval.
type NotificationPublisher struct {
	conn   *nats.Conn
	prefix string
	log    *logger.Logger
}

// NotificationEvent is the JSON payload published to NATS.
type NotificationEvent struct {
	EventType       string          `json:"event_type"`
	LeaveID         string          `json:"leave_id"`
	Requester       string          `json:"requester"`
	Department      string          `json:"department,omitempty"`
	ActorID         string          `json:"actor_id"`
	Role            approval.Role   `json:"role,omitempty"`
	Recipients      []string        `json:"recipients,omitempty"`
	AggregateStatus approval.Status `json:"aggregate_status"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// NewNotificationPublisher connects to the NATS server at url.
func NewNotificationPublisher(url, prefix string, timeout time.Duration, log *logger.Logger) (*NotificationPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("hr-leave"),
		nats.Timeout(timeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("notification: NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("notification: NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NotificationPublisher{conn: conn, prefix: prefix, log: log}, nil
}

// PublishLeaveEvent publishes eventType for req. Recipients are the actors
// of the steps still pending, so downstream notifiers know whom to ping.
func (p *NotificationPublisher) PublishLeaveEvent(ctx context.Context, eventType string, req *approval.LeaveRequest, actor string, role approval.Role) {
	if p == nil || p.conn == nil {
		return
	}

	event := &NotificationEvent{
		EventType:       eventType,
		LeaveID:         req.ID,
		Requester:       req.Requester,
		Department:      req.Department,
		ActorID:         actor,
		Role:            role,
		Recipients:      PendingRecipients(req),
		AggregateStatus: req.Status(),
		OccurredAt:      time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Warn().Err(err).Str("event_type", eventType).Msg("notification: failed to marshal event")
		return
	}

	subject := fmt.Sprintf("%s.%s", p.prefix, eventType)
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.Warn().Err(err).
			Str("subject", subject).
			Str("leave_id", req.ID).
			Msg("notification: failed to publish NATS event (non-fatal)")
		return
	}

	p.log.Debug().
		Str("subject", subject).
		Str("leave_id", req.ID).
		Int("recipients", len(event.Recipients)).
		Msg("notification: event published")
}

// Close drains pending messages and closes the connection.
func (p *NotificationPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

// PendingRecipients returns the named actors of pending steps.
func PendingRecipients(req *approval.LeaveRequest) []string {
	var out []string
	for _, s := range req.Steps {
		if s.Status == approval.StepPending && s.Actor != nil {
			out = append(out, *s.Actor)
		}
	}
	return out
}
