package service

import (
	"context"
	"errors"

	"sportify-backend/internal/infrastructure/supabase"
	"sportify-backend/pkg/logger"
)

var errTokenRejected = errors.New("token rejected")

// LocalTokenValidator checks a token against the shared JWT secret.
type LocalTokenValidator interface {
	ValidateSupabaseToken(token string) (string, error)
}

// UserLookup asks the auth server who a token belongs to.
type UserLookup interface {
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
}

type tokenResolver struct {
	local  LocalTokenValidator
	remote UserLookup
}

// NewTokenResolver resolves tokens through the auth server when remote is
// set. The local HS256 check answers alone when remote is nil, and stands in
// for the auth server while it is unreachable. Either argument may be nil,
// not both.
func NewTokenResolver(local LocalTokenValidator, remote UserLookup) TokenResolver {
	return &tokenResolver{local: local, remote: remote}
}

func (r *tokenResolver) ResolveToken(ctx context.Context, token string) (string, error) {
	localID, localErr := "", errTokenRejected
	if r.local != nil {
		localID, localErr = r.local.ValidateSupabaseToken(token)
	}

	if r.remote == nil {
		return localID, localErr
	}

	identity, err := r.remote.GetUser(ctx, token)
	switch {
	case err == nil:
		return identity.ID, nil
	case supabase.IsRejection(err):
		return "", err
	case localErr == nil:
		logger.Warn("auth server unreachable, using local token check", map[string]interface{}{
			"error": err.Error(),
		})
		return localID, nil
	default:
		return "", err
	}
}
