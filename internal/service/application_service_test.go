package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

func newApplicationFixture() (*ApplicationService, *fakeApplicationRepo, *fakeAccountRepo, *recordingDispatcher) {
	apps := newFakeApplicationRepo()
	accounts := newFakeAccountRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewApplicationService(ApplicationDependencies{
		ApplicationRepo: apps,
		AccountRepo:     accounts,
		Dispatcher:      dispatcher,
	})
	return svc, apps, accounts, dispatcher
}

func validSubmitInput() ApplicationSubmitInput {
	return ApplicationSubmitInput{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Subject:    "Mathematics",
		Bio:        "I teach analytical thinking.",
		Experience: "10 years",
		Country:    "UK",
	}
}

func staffPrincipal() *domain.Principal {
	return &domain.Principal{
		AccountID: "staff-1",
		Email:     "admin@example.com",
		Claims:    domain.Claims{Staff: true},
		Role:      domain.RoleStaff,
	}
}

func TestSubmitPersistsPendingApplication(t *testing.T) {
	svc, apps, _, dispatcher := newApplicationFixture()

	app, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Equal(t, 1, apps.count())
	assert.Equal(t, []events.EventType{events.EventApplicationSubmitted}, dispatcher.types())
}

func TestSubmitMissingFieldLeavesStoreUnchanged(t *testing.T) {
	svc, apps, _, dispatcher := newApplicationFixture()

	input := validSubmitInput()
	input.Email = "   "
	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Message, "email")
	assert.Equal(t, 0, apps.count())
	assert.Empty(t, dispatcher.types())
}

func TestApproveRequiresStaff(t *testing.T) {
	svc, apps, accounts, dispatcher := newApplicationFixture()
	ctx := context.Background()

	account := &domain.Account{Name: "Applicant", Email: "applicant@example.com"}
	require.NoError(t, accounts.Create(ctx, account))
	app, err := svc.Submit(ctx, validSubmitInput())
	require.NoError(t, err)
	dispatcher.published = nil

	student := &domain.Principal{
		AccountID: "student-1",
		Role:      domain.RoleStudent,
	}
	err = svc.Approve(ctx, student, account.ID, &app.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	claims, err := accounts.GetClaims(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, claims.Tutor)
	stored, err := apps.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, stored.Status)
	assert.Empty(t, dispatcher.types())
}

func TestApproveGrantsTutorClaimAndApprovesApplication(t *testing.T) {
	svc, apps, accounts, dispatcher := newApplicationFixture()
	ctx := context.Background()

	account := &domain.Account{Name: "Applicant", Email: "applicant@example.com"}
	require.NoError(t, accounts.Create(ctx, account))
	app, err := svc.Submit(ctx, validSubmitInput())
	require.NoError(t, err)
	dispatcher.published = nil

	require.NoError(t, svc.Approve(ctx, staffPrincipal(), account.ID, &app.ID))

	claims, err := accounts.GetClaims(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, claims.Tutor)
	stored, err := apps.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "staff-1", *stored.ApprovedBy)
	assert.Equal(t, []events.EventType{events.EventApplicationApproved}, dispatcher.types())
}

func TestApprovePreservesExistingClaims(t *testing.T) {
	svc, _, accounts, _ := newApplicationFixture()
	ctx := context.Background()

	account := &domain.Account{Name: "Moderator", Email: "mod@example.com"}
	require.NoError(t, accounts.Create(ctx, account))
	accounts.claims[account.ID] = domain.Claims{Staff: true}

	require.NoError(t, svc.Approve(ctx, staffPrincipal(), account.ID, nil))

	claims, err := accounts.GetClaims(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, claims.Staff)
	assert.True(t, claims.Tutor)
}

func TestApproveUnknownApplicationGrantsNoClaim(t *testing.T) {
	svc, _, accounts, dispatcher := newApplicationFixture()
	ctx := context.Background()

	account := &domain.Account{Name: "Applicant", Email: "applicant@example.com"}
	require.NoError(t, accounts.Create(ctx, account))

	missing := "no-such-application"
	err := svc.Approve(ctx, staffPrincipal(), account.ID, &missing)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	claims, err := accounts.GetClaims(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, claims.Tutor)
	assert.Empty(t, dispatcher.types())
}

func TestApproveUnknownAccountIsNotFound(t *testing.T) {
	svc, _, _, dispatcher := newApplicationFixture()

	err := svc.Approve(context.Background(), staffPrincipal(), "no-such-account", nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	assert.Empty(t, dispatcher.types())
}

func TestApproveMissingUIDIsValidationFailure(t *testing.T) {
	svc, _, _, _ := newApplicationFixture()

	err := svc.Approve(context.Background(), staffPrincipal(), "  ", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestListPendingExcludesApproved(t *testing.T) {
	svc, _, accounts, _ := newApplicationFixture()
	ctx := context.Background()

	account := &domain.Account{Name: "Applicant", Email: "applicant@example.com"}
	require.NoError(t, accounts.Create(ctx, account))

	first, err := svc.Submit(ctx, validSubmitInput())
	require.NoError(t, err)
	second := validSubmitInput()
	second.Email = "other@example.com"
	_, err = svc.Submit(ctx, second)
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, staffPrincipal(), account.ID, &first.ID))

	pending, err := svc.ListPending(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "other@example.com", pending[0].Email)
}
