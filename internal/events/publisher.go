// Package events publishes affiliate activity to NATS for any interested
// downstream service. Publishing is optional; the service runs without it.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event subjects
const (
	SubjectReportRefreshed  = "affiliate.report.refreshed"
	SubjectShortLinkCreated = "affiliate.shortlink.created"
)

// ReportRefreshedEvent is emitted after a live (non-cached) report fetch.
type ReportRefreshedEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Conversions    int       `json:"conversions"`
	CompletedTotal float64   `json:"completed_total"`
	EstimatedTotal float64   `json:"estimated_total"`
	Timestamp      time.Time `json:"timestamp"`
}

// ShortLinkCreatedEvent is emitted when a short link is generated.
type ShortLinkCreatedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	OriginalLink string    `json:"original_link"`
	ShortLink    string    `json:"short_link"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher handles publishing events to NATS.
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(nc *nats.Conn, logger *zap.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

// PublishReportRefreshed publishes a report refreshed event.
func (p *Publisher) PublishReportRefreshed(event *ReportRefreshedEvent) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectReportRefreshed, data)
}

// PublishShortLinkCreated publishes a short link created event.
func (p *Publisher) PublishShortLinkCreated(event *ShortLinkCreatedEvent) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectShortLinkCreated, data)
}
