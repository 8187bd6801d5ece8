package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/observability"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// Discord stream event kinds the reconciler understands. Anything else
// lands in the raw diagnostic log.
const (
	DiscordEventCreate = "MESSAGE_CREATE"
	DiscordEventUpdate = "MESSAGE_UPDATE"
	DiscordEventDelete = "MESSAGE_DELETE"
)

// SyncService reconciles the at-least-once Discord ad stream into the
// ads store, keyed by external message id. Replaying any payload
// converges to the same single row.
type SyncService struct {
	ads        repository.AdRepository
	rawEvents  repository.DiscordEventRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// SyncDependencies bundles collaborators for the service.
type SyncDependencies struct {
	AdRepo     repository.AdRepository
	RawRepo    repository.DiscordEventRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// DiscordEventInput is one decoded stream event plus its raw bytes for
// the unknown-kind fallback log.
type DiscordEventInput struct {
	Event      string
	MessageID  string
	ChannelID  string
	AuthorName string
	Title      string
	Body       string
	Content    string
	Raw        []byte
}

// NewSyncService constructs the service.
func NewSyncService(deps SyncDependencies) *SyncService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		ads:        deps.AdRepo,
		rawEvents:  deps.RawRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Process applies one stream event. Known kinds require a message id;
// unknown kinds are logged verbatim and acknowledged so new upstream
// event types are never lost.
func (s *SyncService) Process(ctx context.Context, input DiscordEventInput) error {
	switch input.Event {
	case DiscordEventCreate, DiscordEventUpdate, DiscordEventDelete:
		if strings.TrimSpace(input.MessageID) == "" {
			return apperrors.NewValidationError("missing required field messageId", map[string]any{"messageId": "required"})
		}
	default:
		s.metrics.RecordSyncEvent(input.Event, "unrecognized")
		s.logger.Info("unrecognized discord event kind, logging raw payload",
			zap.String("event", input.Event))
		return s.rawEvents.Append(ctx, input.Raw)
	}

	switch input.Event {
	case DiscordEventCreate:
		return s.create(ctx, input)
	case DiscordEventUpdate:
		return s.update(ctx, input)
	default:
		return s.archive(ctx, input)
	}
}

// create upserts by message id in a single conditional statement, so
// two near-simultaneous deliveries of the same new id cannot produce
// duplicate rows. A create for a previously archived ad reactivates it.
func (s *SyncService) create(ctx context.Context, input DiscordEventInput) error {
	title, body, err := resolveContent(input)
	if err != nil {
		s.metrics.RecordSyncEvent(input.Event, "invalid")
		return err
	}

	messageID := strings.TrimSpace(input.MessageID)
	ad := &domain.Ad{
		Title:            title,
		Body:             body,
		Source:           domain.AdSourceDiscord,
		CreatedBy:        strings.TrimSpace(input.AuthorName),
		DiscordMessageID: &messageID,
		DiscordChannelID: optional(input.ChannelID),
		DiscordAuthor:    optional(input.AuthorName),
	}
	if err := s.ads.UpsertDiscord(ctx, ad); err != nil {
		return err
	}

	s.metrics.RecordSyncEvent(input.Event, "applied")
	s.publish(ctx, messageID, input.Event, title, domain.AdStatusActive)
	return nil
}

func (s *SyncService) update(ctx context.Context, input DiscordEventInput) error {
	title, body, err := resolveContent(input)
	if err != nil {
		s.metrics.RecordSyncEvent(input.Event, "invalid")
		return err
	}

	messageID := strings.TrimSpace(input.MessageID)
	found, err := s.ads.UpdateContentByMessageID(ctx, messageID, title, body)
	if err != nil {
		return err
	}
	if !found {
		s.metrics.RecordSyncEvent(input.Event, "missing")
		return apperrors.NewNotFound("ad", map[string]any{"messageId": messageID})
	}

	s.metrics.RecordSyncEvent(input.Event, "applied")
	s.publish(ctx, messageID, input.Event, title, "")
	return nil
}

// archive tolerates unknown ids: a delete replayed after the ad was
// never created (or a delete racing ahead of its create) is a no-op,
// not an error.
func (s *SyncService) archive(ctx context.Context, input DiscordEventInput) error {
	messageID := strings.TrimSpace(input.MessageID)
	found, err := s.ads.ArchiveByMessageID(ctx, messageID)
	if err != nil {
		return err
	}
	if !found {
		s.metrics.RecordSyncEvent(input.Event, "noop")
		return nil
	}

	s.metrics.RecordSyncEvent(input.Event, "applied")
	s.publish(ctx, messageID, input.Event, "", domain.AdStatusArchived)
	return nil
}

func (s *SyncService) publish(ctx context.Context, messageID, kind, title string, status domain.AdStatus) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAdSynced,
		SubjectID: messageID,
		Timestamp: time.Now(),
		Payload: events.AdSyncedPayload{
			MessageID: messageID,
			Kind:      kind,
			Title:     title,
			Status:    status,
		},
	})
}

// resolveContent picks title and body, letting content stand in for
// either, and applies the storage caps. The title must come from title
// or content; a body alone is not enough to form an ad.
func resolveContent(input DiscordEventInput) (string, string, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = strings.TrimSpace(input.Content)
	}
	if title == "" {
		return "", "", apperrors.NewValidationError("neither title nor content is present", nil)
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		body = strings.TrimSpace(input.Content)
	}
	return truncate(title, domain.AdTitleMaxLen), truncate(body, domain.AdBodyMaxLen), nil
}

func optional(val string) *string {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	return &val
}
