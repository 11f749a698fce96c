package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// PROVISIONING DTOs
// ========================================

// ProvisionUserRequest is the body of the create-user function.
type ProvisionUserRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	UserType UserType `json:"userType"`
}

func (r ProvisionUserRequest) Validate() error {
	types := make([]interface{}, 0, len(AllUserTypes()))
	for _, t := range AllUserTypes() {
		types = append(types, t)
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 72).Error("password must be 6-72 characters"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.UserType,
			validation.Required.Error("userType is required"),
			validation.In(types...).Error("invalid userType"),
		),
	)
}

// UserDTO is the created identity returned to the caller.
type UserDTO struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ProvisionUserResponse is the 200 body: {success: true, user}.
type ProvisionUserResponse struct {
	Success bool    `json:"success"`
	User    UserDTO `json:"user"`
}
