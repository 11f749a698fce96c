package user

import "context"

// Service is the provisioning use case.
type Service interface {
	// ProvisionUser creates a pre-confirmed identity on behalf of an
	// admin or super_admin caller. Nothing is created when authorization fails.
	ProvisionUser(ctx context.Context, bearerToken string, req ProvisionUserRequest) (*ProvisionUserResponse, error)
}
