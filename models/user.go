package models

import "time"

// Role is the access role of an account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSpecialist Role = "specialist"
	RoleUser       Role = "user"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSpecialist, RoleUser:
		return true
	}
	return false
}

// User is an account of the portal. Specialists self-register with an
// identification number; administrators are provisioned out of band.
type User struct {
	ID int64 `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Email is unique and always stored lowercased.
	Email string `json:"email"`

	// Password holds the bcrypt hash. It is never serialized.
	Password string `json:"-"`

	Role     Role `json:"role"`
	IsActive bool `json:"is_active"`

	// HospitalName is filled for specialists only.
	HospitalName string `json:"hospital_name"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u User) IsSpecialist() bool { return u.Role == RoleSpecialist }

// CanAccessAdmin reports whether the account may use the admin surface.
func (u User) CanAccessAdmin() bool {
	return u.IsAdmin() && u.IsActive
}

// CanAccessProfile reports whether the account may use the specialist area.
// Administrators are allowed as well.
func (u User) CanAccessProfile() bool {
	return (u.IsSpecialist() || u.IsAdmin()) && u.IsActive
}

// UserSummary is the public projection of a [User] returned by auth and
// profile endpoints.
type UserSummary struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	FullName         string `json:"full_name"`
	HospitalName     string `json:"hospital_name"`
	Email            string `json:"email"`
	Role             Role   `json:"role"`
	IsAdmin          bool   `json:"is_admin"`
	IsSpecialist     bool   `json:"is_specialist"`
	CanAccessAdmin   bool   `json:"can_access_admin"`
	CanAccessProfile bool   `json:"can_access_profile"`

	// IdentificationNumber is set only in the registration response.
	IdentificationNumber string `json:"identification_number,omitempty"`
}

// Summary builds the public projection of u.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		FullName:         u.FullName(),
		HospitalName:     u.HospitalName,
		Email:            u.Email,
		Role:             u.Role,
		IsAdmin:          u.IsAdmin(),
		IsSpecialist:     u.IsSpecialist(),
		CanAccessAdmin:   u.CanAccessAdmin(),
		CanAccessProfile: u.CanAccessProfile(),
	}
}
