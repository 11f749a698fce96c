package user

import "time"

// Role is the application role stored in the users table.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsPrivileged reports whether the role may provision new identities.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// UserType tags an identity with the kind of account it represents.
type UserType string

const (
	UserTypeUser         UserType = "user"
	UserTypeAdmin        UserType = "admin"
	UserTypeSuperAdmin   UserType = "super_admin"
	UserTypeProfessional UserType = "professional"
	UserTypeGroundOwner  UserType = "ground_owner"
	UserTypeVendor       UserType = "vendor"
)

// AllUserTypes returns all valid user types
func AllUserTypes() []UserType {
	return []UserType{
		UserTypeUser,
		UserTypeAdmin,
		UserTypeSuperAdmin,
		UserTypeProfessional,
		UserTypeGroundOwner,
		UserTypeVendor,
	}
}

// Role maps an account type to the role its profile row carries.
func (t UserType) Role() Role {
	switch t {
	case UserTypeAdmin:
		return RoleAdmin
	case UserTypeSuperAdmin:
		return RoleSuperAdmin
	default:
		return RoleUser
	}
}

// Profile is the application row keyed by the identity id.
type Profile struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	UserType  UserType  `db:"user_type" json:"user_type"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
