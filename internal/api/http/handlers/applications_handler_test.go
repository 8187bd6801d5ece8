package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/tutor-marketplace/internal/api/http"
	"github.com/spec-kit/tutor-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/service"
)

const (
	approveAdminEmail = "admin@example.com"
	approveJWTSecret  = "token-secret-for-tests"
)

type memoryAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	claims   map[string]domain.Claims
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{
		accounts: make(map[string]*domain.Account),
		claims:   make(map[string]domain.Claims),
	}
}

func (r *memoryAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID == "" {
		account.ID = "acc-" + account.Email
	}
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *memoryAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
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

func (r *memoryAccountRepo) GetClaims(_ context.Context, accountID string) (domain.Claims, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.claims[accountID], nil
}

func (r *memoryAccountRepo) GrantTutorClaim(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	claims := r.claims[accountID]
	claims.Tutor = true
	r.claims[accountID] = claims
	return nil
}

type memoryApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*domain.TutorApplication
}

func newMemoryApplicationRepo() *memoryApplicationRepo {
	return &memoryApplicationRepo{apps: make(map[string]*domain.TutorApplication)}
}

func (r *memoryApplicationRepo) Create(_ context.Context, app *domain.TutorApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = "app-" + app.Email
	}
	app.SubmittedAt = time.Now()
	stored := *app
	r.apps[app.ID] = &stored
	return nil
}

func (r *memoryApplicationRepo) GetByID(_ context.Context, id string) (*domain.TutorApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *app
	return &copied, nil
}

func (r *memoryApplicationRepo) ListByStatus(_ context.Context, status domain.ApplicationStatus, _, _ int) ([]domain.TutorApplication, error) {
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

func (r *memoryApplicationRepo) Approve(_ context.Context, id, approvedBy string) error {
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

type approveFixture struct {
	app        *fiber.App
	accounts   *memoryAccountRepo
	apps       *memoryApplicationRepo
	staffToken string
}

func newApproveFixture(t *testing.T) *approveFixture {
	t.Helper()
	accounts := newMemoryAccountRepo()
	apps := newMemoryApplicationRepo()

	svc := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: apps,
		AccountRepo:     accounts,
		Dispatcher:      events.NewInMemoryDispatcher(),
	})
	handler := handlers.NewApplicationsHandler(svc)

	tokens := auth.NewTokenManager(approveJWTSecret, 60)
	resolver := auth.NewRoleResolver(approveAdminEmail)
	authMiddleware := auth.NewAuthMiddleware(tokens, accounts, resolver, zap.NewNop())

	staff := &domain.Account{Name: "Admin", Email: approveAdminEmail}
	require.NoError(t, accounts.Create(context.Background(), staff))
	token, _, err := tokens.GenerateToken(staff.ID, staff.Email)
	require.NoError(t, err)

	app := fiber.New()
	httpapi.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	group := app.Group("/applications", authMiddleware.Handle)
	group.Post("/approve", auth.RequireStaff(), handler.Approve)

	return &approveFixture{app: app, accounts: accounts, apps: apps, staffToken: token}
}

func (f *approveFixture) approve(t *testing.T, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/applications/approve", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.staffToken)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestApproveEndpointTransitionsApplication(t *testing.T) {
	f := newApproveFixture(t)
	ctx := context.Background()

	applicant := &domain.Account{Name: "Applicant", Email: "applicant@example.com"}
	require.NoError(t, f.accounts.Create(ctx, applicant))
	application := &domain.TutorApplication{
		Name:    "Applicant",
		Email:   applicant.Email,
		Subject: "Physics",
		Status:  domain.ApplicationStatusPending,
	}
	require.NoError(t, f.apps.Create(ctx, application))

	resp := f.approve(t, map[string]string{
		"uid":           applicant.ID,
		"applicationId": application.ID,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := f.apps.GetByID(ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, stored.Status)

	claims, err := f.accounts.GetClaims(ctx, applicant.ID)
	require.NoError(t, err)
	assert.True(t, claims.Tutor)
}

func TestApproveEndpointUnknownApplicationIsNotFound(t *testing.T) {
	f := newApproveFixture(t)
	ctx := context.Background()

	applicant := &domain.Account{Name: "Applicant", Email: "applicant@example.com"}
	require.NoError(t, f.accounts.Create(ctx, applicant))

	resp := f.approve(t, map[string]string{
		"uid":           applicant.ID,
		"applicationId": "no-such-application",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp)["code"])

	claims, err := f.accounts.GetClaims(ctx, applicant.ID)
	require.NoError(t, err)
	assert.False(t, claims.Tutor)
}
