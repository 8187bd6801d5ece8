package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
)

const principalKey = "auth_principal"

// AuthMiddleware resolves bearer tokens into principals. Authentication
// is optional: requests without a token proceed as anonymous, and only
// the role gates below reject callers.
type AuthMiddleware struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
	resolver *RoleResolver
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, accounts repository.AccountRepository, resolver *RoleResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accounts: accounts, resolver: resolver, logger: logger}
}

// Handle loads the caller's principal when a valid token is present.
// Claims are fetched from the store on every request rather than read
// from the token, so a fresh privilege grant is visible immediately.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	tokenClaims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return c.Next()
	}

	account, err := m.accounts.GetByID(c.Context(), tokenClaims.AccountID)
	if err != nil {
		return c.Next()
	}

	principal := &domain.Principal{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
	}

	claims, err := m.accounts.GetClaims(c.Context(), account.ID)
	switch {
	case err == nil:
		principal.Claims = claims
		principal.Role = m.resolver.Resolve(claims, account.Email)
	case err == pgx.ErrNoRows:
		principal.Role = m.resolver.Resolve(domain.Claims{}, account.Email)
	default:
		m.logger.Warn("claim fetch failed", zap.String("account_id", account.ID), zap.Error(err))
		principal.Role = m.resolver.Fallback(account.Email)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal, or nil
// for anonymous callers.
func PrincipalFromContext(c *fiber.Ctx) *domain.Principal {
	val := c.Locals(principalKey)
	if val == nil {
		return nil
	}
	principal, ok := val.(*domain.Principal)
	if !ok {
		return nil
	}
	return principal
}
