package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/tutor-marketplace/internal/config"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/observability"
)

// Embed colors for the outbound webhook messages.
const (
	embedColorBlue   = 0x3498db
	embedColorGreen  = 0x2ecc71
	embedColorOrange = 0xe67e22
)

// webhookURLPlaceholder disables delivery when the operator left the
// sample value in place.
const webhookURLPlaceholder = "YOUR_WEBHOOK_URL"

// EmbedField is one name/value pair inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is the structured summary posted to the webhook sink.
type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp"`
}

type webhookBody struct {
	Embeds []Embed `json:"embeds"`
}

// NotificationService turns domain events into best-effort webhook
// posts. Delivery is purely advisory: failures are logged and absorbed,
// never surfaced to the workflow that committed the write.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	cfg        config.NotificationConfig
	client     *http.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout()},
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationSubmitted)
	n.dispatcher.Subscribe(events.EventApplicationApproved, n.handleApplicationApproved)
	n.dispatcher.Subscribe(events.EventDemoBooked, n.handleDemoBooked)
}

func (n *NotificationService) handleApplicationSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationSubmittedPayload)
	if !ok {
		return nil
	}
	n.send(ctx, Embed{
		Title:       "New Tutor Application",
		Description: fmt.Sprintf("%s applied to teach %s", payload.Name, payload.Subject),
		Color:       embedColorBlue,
		Fields: []EmbedField{
			{Name: "Email", Value: payload.Email, Inline: true},
			{Name: "Country", Value: payload.Country, Inline: true},
		},
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
	})
	return nil
}

func (n *NotificationService) handleApplicationApproved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ApplicationApprovedPayload)
	if !ok {
		return nil
	}
	n.send(ctx, Embed{
		Title:       "Tutor Application Approved",
		Description: fmt.Sprintf("Account %s now holds the tutor claim", payload.AccountID),
		Color:       embedColorGreen,
		Fields: []EmbedField{
			{Name: "Approved By", Value: payload.ApprovedBy, Inline: true},
		},
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
	})
	return nil
}

func (n *NotificationService) handleDemoBooked(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.DemoBookedPayload)
	if !ok {
		return nil
	}
	n.send(ctx, Embed{
		Title:       "New Demo Booking",
		Description: fmt.Sprintf("Demo class requested with %s", payload.TutorName),
		Color:       embedColorOrange,
		Fields: []EmbedField{
			{Name: "Tutor", Value: payload.TutorID, Inline: true},
			{Name: "Subject", Value: payload.Subject, Inline: true},
		},
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
	})
	return nil
}

// send performs one fire-and-forget POST. Every failure path logs and
// returns: notification sits outside the write's consistency boundary.
func (n *NotificationService) send(ctx context.Context, embed Embed) {
	url := strings.TrimSpace(n.cfg.WebhookURL)
	if url == "" || url == webhookURLPlaceholder {
		n.logger.Debug("notification webhook not configured, skipping", zap.String("title", embed.Title))
		n.metrics.RecordNotification("skipped")
		return
	}

	body, err := json.Marshal(webhookBody{Embeds: []Embed{embed}})
	if err != nil {
		n.logger.Warn("notification encode failed", zap.Error(err))
		n.metrics.RecordNotification("error")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("notification request build failed", zap.Error(err))
		n.metrics.RecordNotification("error")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("notification delivery failed", zap.String("title", embed.Title), zap.Error(err))
		n.metrics.RecordNotification("error")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Warn("notification rejected by sink",
			zap.String("title", embed.Title),
			zap.Int("status", resp.StatusCode))
		n.metrics.RecordNotification("rejected")
		return
	}
	n.metrics.RecordNotification("delivered")
}
