package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterSpecialistRequest is the body of POST /auth/register-specialist.
type RegisterSpecialistRequest struct {
	IdentificationNumber string `json:"identification_number"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	HospitalName         string `json:"hospital_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// CheckIDRequest is the body of POST /auth/check-id.
type CheckIDRequest struct {
	IdentificationNumber string `json:"identification_number"`
}

// UpdateProfileRequest is the body of PUT /specialist/profile.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ChangePasswordRequest is the body of POST /specialist/change-password.
type ChangePasswordRequest struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// SettingsRequest is the body of PUT /specialist/settings. Nil fields keep
// their current value.
type SettingsRequest struct {
	Language           *string `json:"language"`
	EmailNotifications *bool   `json:"email_notifications"`
	ProfileVisibility  *string `json:"profile_visibility"`
}

// IdentificationNumberRequest is the body of admin create/update calls.
type IdentificationNumberRequest struct {
	Number      string  `json:"number"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// BatchRequest is the body of POST /admin/identification-numbers/batch.
type BatchRequest struct {
	Prefix      string  `json:"prefix"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Description *string `json:"description"`
}

// ContentRequest is the body of POST /admin/specialist-content.
type ContentRequest struct {
	UserID      int64        `json:"user_id"`
	ContentType ContentType  `json:"content_type"`
	Title       Translatable `json:"title"`
	Description Translatable `json:"description"`
	Content     Translatable `json:"content"`
	IsActive    *bool        `json:"is_active"`
	SortOrder   *int         `json:"sort_order"`
}

// FileUpload describes an uploaded file before it is stored.
type FileUpload struct {
	ContentID    int64
	OriginalName string
	MimeType     string
	Size         int64
	DisplayName  Translatable
	Description  Translatable
}

// PageRequest is the body of admin page create/update calls.
type PageRequest struct {
	Slug            string       `json:"slug"`
	Title           Translatable `json:"title"`
	Content         Translatable `json:"content"`
	MetaTitle       Translatable `json:"meta_title"`
	MetaDescription Translatable `json:"meta_description"`
	IsPublished     *bool        `json:"is_published"`
	IsHome          *bool        `json:"is_home"`
	SortOrder       *int         `json:"sort_order"`
}
