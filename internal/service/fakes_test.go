package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
)

// In-memory repository fakes mirroring the Postgres semantics the
// services rely on.

type fakeAdRepo struct {
	mu     sync.Mutex
	byMsg  map[string]*domain.Ad
	nextID int
}

func newFakeAdRepo() *fakeAdRepo {
	return &fakeAdRepo{byMsg: make(map[string]*domain.Ad)}
}

func (r *fakeAdRepo) UpsertDiscord(_ context.Context, ad *domain.Ad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := *ad.DiscordMessageID
	if existing, ok := r.byMsg[key]; ok {
		existing.Title = ad.Title
		existing.Body = ad.Body
		existing.Status = domain.AdStatusActive
		existing.UpdatedAt = time.Now()
		*ad = *existing
		return nil
	}
	r.nextID++
	ad.ID = fmt.Sprintf("ad-%d", r.nextID)
	ad.Status = domain.AdStatusActive
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = ad.CreatedAt
	stored := *ad
	r.byMsg[key] = &stored
	return nil
}

func (r *fakeAdRepo) UpdateContentByMessageID(_ context.Context, messageID, title, body string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ad, ok := r.byMsg[messageID]
	if !ok {
		return false, nil
	}
	ad.Title = title
	ad.Body = body
	ad.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeAdRepo) ArchiveByMessageID(_ context.Context, messageID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ad, ok := r.byMsg[messageID]
	if !ok {
		return false, nil
	}
	ad.Status = domain.AdStatusArchived
	ad.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeAdRepo) GetByMessageID(_ context.Context, messageID string) (*domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ad, ok := r.byMsg[messageID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ad
	return &copied, nil
}

func (r *fakeAdRepo) ListActive(_ context.Context, _, _ int) ([]domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ad
	for _, ad := range r.byMsg {
		if ad.Status == domain.AdStatusActive {
			result = append(result, *ad)
		}
	}
	return result, nil
}

func (r *fakeAdRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byMsg)
}

type fakeRawRepo struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (r *fakeRawRepo) Append(_ context.Context, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	return nil
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	claims   map[string]domain.Claims
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: make(map[string]*domain.Account),
		claims:   make(map[string]domain.Claims),
	}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = fmt.Sprintf("acc-%d", len(r.accounts)+1)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetClaims(_ context.Context, accountID string) (domain.Claims, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.claims[accountID], nil
}

func (r *fakeAccountRepo) GrantTutorClaim(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	claims := r.claims[accountID]
	claims.Tutor = true
	r.claims[accountID] = claims
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*domain.TutorApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*domain.TutorApplication)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.TutorApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.ID = fmt.Sprintf("app-%d", len(r.apps)+1)
	app.SubmittedAt = time.Now()
	stored := *app
	r.apps[app.ID] = &stored
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.TutorApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByStatus(_ context.Context, status domain.ApplicationStatus, _, _ int) ([]domain.TutorApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.TutorApplication
	for _, app := range r.apps {
		if app.Status == status {
			result = append(result, *app)
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) Approve(_ context.Context, id, approvedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	app.Status = domain.ApplicationStatusApproved
	app.ApprovedAt = &now
	app.ApprovedBy = &approvedBy
	return nil
}

func (r *fakeApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.DemoBooking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.DemoBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = fmt.Sprintf("booking-%d", len(r.bookings)+1)
	booking.BookedAt = time.Now()
	stored := *booking
	r.bookings = append(r.bookings, &stored)
	return nil
}

func (r *fakeBookingRepo) ListByAccount(_ context.Context, accountID string, _, _ int) ([]domain.DemoBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.DemoBooking
	for _, booking := range r.bookings {
		if booking.AccountID != nil && *booking.AccountID == accountID {
			result = append(result, *booking)
		}
	}
	return result, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	messages []*domain.ChatMessage
}

func (r *fakeChatRepo) Create(_ context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = fmt.Sprintf("msg-%d", len(r.messages)+1)
	msg.SentAt = time.Now()
	stored := *msg
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *fakeChatRepo) ListBySession(_ context.Context, sessionID string, _, _ int) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ChatMessage
	for _, msg := range r.messages {
		if msg.SessionID == sessionID {
			result = append(result, *msg)
		}
	}
	return result, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		result = append(result, e.Type)
	}
	return result
}
