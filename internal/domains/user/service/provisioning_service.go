package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	user "sportify-backend/internal/domains/user"
	"sportify-backend/internal/infrastructure/supabase"
	"sportify-backend/pkg/logger"
)

// TokenResolver turns a bearer token into the identity id it was issued for.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (string, error)
}

// IdentityAdmin creates identities with elevated privileges.
type IdentityAdmin interface {
	CreateUser(ctx context.Context, params supabase.CreateUserParams) (*supabase.User, error)
}

const (
	defaultUpsertAttempts   = 3
	defaultUpsertRetryDelay = 200 * time.Millisecond
)

type provisioningService struct {
	tokens   TokenResolver
	admin    IdentityAdmin
	profiles user.ProfileRepository

	upsertAttempts   int
	upsertRetryDelay time.Duration
}

func NewProvisioningService(tokens TokenResolver, admin IdentityAdmin, profiles user.ProfileRepository) user.Service {
	return &provisioningService{
		tokens:           tokens,
		admin:            admin,
		profiles:         profiles,
		upsertAttempts:   defaultUpsertAttempts,
		upsertRetryDelay: defaultUpsertRetryDelay,
	}
}

// ProvisionUser flow:
// 1. Resolve bearer token to the caller id
// 2. Load caller role, require admin or super_admin
// 3. Validate request
// 4. Create pre-confirmed identity tagged with user_type
// 5. Upsert profile row keyed by the new identity id
//
// Steps 1-3 have no side effects.
func (s *provisioningService) ProvisionUser(
	ctx context.Context,
	bearerToken string,
	req user.ProvisionUserRequest,
) (*user.ProvisionUserResponse, error) {
	if s.tokens == nil || s.admin == nil || s.profiles == nil {
		return nil, user.ErrProvisioningNotConfigured
	}

	callerID, err := s.authorize(ctx, bearerToken)
	if err != nil {
		return nil, err
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.admin.CreateUser(ctx, supabase.CreateUserParams{
		Email:        req.Email,
		Password:     req.Password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{
			"name":      req.Name,
			"user_type": string(req.UserType),
		},
	})
	if err != nil {
		logger.Error("identity creation failed", err)
		return nil, fmt.Errorf("%w: %v", user.ErrIdentityCreation, err)
	}

	profile := &user.Profile{
		ID:       identity.ID,
		Email:    req.Email,
		Name:     req.Name,
		UserType: req.UserType,
		Role:     req.UserType.Role(),
	}
	// The identity exists from here on; a dropped client must not leave it without a profile.
	if err := s.upsertProfile(context.WithoutCancel(ctx), profile); err != nil {
		log.Error().Err(err).
			Str("orphaned_identity_id", identity.ID).
			Str("email", req.Email).
			Str("user_type", string(req.UserType)).
			Msg("profile upsert failed, identity has no profile row")
		return nil, fmt.Errorf("%w: %v", user.ErrProfileCreation, err)
	}

	logger.Info("user provisioned", map[string]interface{}{
		"caller_id": callerID,
		"user_id":   identity.ID,
		"user_type": string(req.UserType),
	})

	return &user.ProvisionUserResponse{
		Success: true,
		User: user.UserDTO{
			ID:           identity.ID,
			Email:        identity.Email,
			UserMetadata: identity.UserMetadata,
			CreatedAt:    identity.CreatedAt,
		},
	}, nil
}

// upsertProfile retries with exponential backoff: delay * 2^(attempt-1).
func (s *provisioningService) upsertProfile(ctx context.Context, profile *user.Profile) error {
	var lastErr error

	for attempt := 1; attempt <= s.upsertAttempts; attempt++ {
		lastErr = s.profiles.UpsertProfile(ctx, profile)
		if lastErr == nil {
			return nil
		}
		log.Warn().Err(lastErr).Int("attempt", attempt).Str("user_id", profile.ID).Msg("profile upsert attempt failed")

		if attempt < s.upsertAttempts {
			delay := s.upsertRetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("profile upsert failed after %d attempts: %w", s.upsertAttempts, lastErr)
}

func (s *provisioningService) authorize(ctx context.Context, bearerToken string) (string, error) {
	if bearerToken == "" {
		return "", user.ErrMissingToken
	}

	callerID, err := s.tokens.ResolveToken(ctx, bearerToken)
	if err != nil {
		logger.Warn("provisioning rejected: invalid token", map[string]interface{}{"error": err.Error()})
		return "", user.ErrInvalidToken
	}

	role, err := s.profiles.GetRole(ctx, callerID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			logger.Error("role lookup failed", err)
		}
		return "", user.ErrRoleLookup
	}

	if !role.IsPrivileged() {
		logger.Warn("provisioning rejected: insufficient role", map[string]interface{}{
			"caller_id": callerID,
			"role":      string(role),
		})
		return "", user.ErrForbidden
	}

	return callerID, nil
}
