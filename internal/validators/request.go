package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/med-cms/models"
)

// FieldPartial restricts validation to the fields present in an update
// request: absent translatable maps and nil pointers are skipped.
const FieldPartial = "partial"

// RequestValidator implements the Validator interface for every request
// body accepted by the HTTP layer.
type RequestValidator struct {
}

// NewRequestValidator constructs a new RequestValidator
// and returns it as the Validator interface.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported request are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known request,
// ErrUnknownField for an unknown scope name and a *ValidationError when a
// rule fails.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	partial := false
	for _, f := range fields {
		if f != FieldPartial {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		partial = true
	}

	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLogin(value)
	case *models.LoginRequest:
		return v.validateLogin(*value)

	case models.RegisterSpecialistRequest:
		return v.validateRegistration(value)
	case *models.RegisterSpecialistRequest:
		return v.validateRegistration(*value)

	case models.CheckIDRequest:
		return v.validateCheckID(value)
	case *models.CheckIDRequest:
		return v.validateCheckID(*value)

	case models.UpdateProfileRequest:
		return v.validateProfile(value)
	case *models.UpdateProfileRequest:
		return v.validateProfile(*value)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value)

	case models.SettingsRequest:
		return v.validateSettings(value)
	case *models.SettingsRequest:
		return v.validateSettings(*value)

	case models.IdentificationNumberRequest:
		return v.validateIdentificationNumber(value)
	case *models.IdentificationNumberRequest:
		return v.validateIdentificationNumber(*value)

	case models.BatchRequest:
		return v.validateBatch(value)
	case *models.BatchRequest:
		return v.validateBatch(*value)

	case models.ContentRequest:
		return v.validateContent(value)
	case *models.ContentRequest:
		return v.validateContent(*value)

	case models.FileUpload:
		return v.validateFileUpload(value)
	case *models.FileUpload:
		return v.validateFileUpload(*value)

	case models.PageRequest:
		return v.validatePage(value, partial)
	case *models.PageRequest:
		return v.validatePage(*value, partial)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateLogin(req models.LoginRequest) error {
	e := &ValidationError{}
	email(e, "email", req.Email)
	required(e, "password", req.Password)
	return e.orNil()
}

func (v *RequestValidator) validateRegistration(req models.RegisterSpecialistRequest) error {
	e := &ValidationError{}

	if required(e, "identification_number", req.IdentificationNumber) {
		length(e, "identification_number", req.IdentificationNumber, 3, 50)
		matches(e, "identification_number", req.IdentificationNumber, identificationNumberPattern,
			"The identification number may only contain letters, digits, hyphens and underscores.")
	}

	personName(e, "first_name", req.FirstName)
	personName(e, "last_name", req.LastName)

	if required(e, "hospital_name", req.HospitalName) {
		length(e, "hospital_name", req.HospitalName, 5, 255)
		matches(e, "hospital_name", req.HospitalName, hospitalNamePattern,
			"The hospital name contains invalid characters.")
	}

	email(e, "email", req.Email)
	password(e, "password", req.Password, req.PasswordConfirmation)

	return e.orNil()
}

func (v *RequestValidator) validateCheckID(req models.CheckIDRequest) error {
	e := &ValidationError{}
	required(e, "identification_number", req.IdentificationNumber)
	return e.orNil()
}

func (v *RequestValidator) validateProfile(req models.UpdateProfileRequest) error {
	e := &ValidationError{}
	personName(e, "first_name", req.FirstName)
	personName(e, "last_name", req.LastName)
	email(e, "email", req.Email)
	return e.orNil()
}

func (v *RequestValidator) validateChangePassword(req models.ChangePasswordRequest) error {
	e := &ValidationError{}
	required(e, "current_password", req.CurrentPassword)
	password(e, "password", req.Password, req.PasswordConfirmation)
	if req.Password != "" && req.Password == req.CurrentPassword {
		e.Add("password", "The password and current password must be different.")
	}
	return e.orNil()
}

func (v *RequestValidator) validateSettings(req models.SettingsRequest) error {
	e := &ValidationError{}
	if req.Language != nil {
		oneOf(e, "language", *req.Language, models.SupportedLocales...)
	}
	if req.ProfileVisibility != nil {
		oneOf(e, "profile_visibility", *req.ProfileVisibility, "internal", "public", "private")
	}
	return e.orNil()
}

func (v *RequestValidator) validateIdentificationNumber(req models.IdentificationNumberRequest) error {
	e := &ValidationError{}
	if required(e, "number", req.Number) {
		length(e, "number", req.Number, 0, 50)
	}
	if req.Description != nil {
		length(e, "description", *req.Description, 0, 255)
	}
	return e.orNil()
}

func (v *RequestValidator) validateBatch(req models.BatchRequest) error {
	e := &ValidationError{}
	if required(e, "prefix", req.Prefix) {
		length(e, "prefix", req.Prefix, 0, 10)
	}
	if req.Start < 1 {
		e.Add("start", "The start must be at least 1.")
	}
	if req.End < 1 {
		e.Add("end", "The end must be at least 1.")
	}
	if req.End < req.Start {
		e.Add("end", "The end must be greater than or equal to start.")
	}
	if req.Description != nil {
		length(e, "description", *req.Description, 0, 255)
	}
	return e.orNil()
}

func (v *RequestValidator) validateContent(req models.ContentRequest) error {
	e := &ValidationError{}
	if req.UserID <= 0 {
		e.Add("user_id", "The user_id field is required.")
	}
	if !req.ContentType.IsValid() {
		e.Add("content_type", "The selected content_type is invalid.")
	}
	translatable(e, "title", req.Title, true)
	translatable(e, "description", req.Description, false)
	translatable(e, "content", req.Content, false)
	nonNegative(e, "sort_order", req.SortOrder)
	return e.orNil()
}

func (v *RequestValidator) validateFileUpload(req models.FileUpload) error {
	e := &ValidationError{}
	if req.ContentID <= 0 {
		e.Add("content_id", "The content_id field is required.")
	}
	if required(e, "file", req.OriginalName) {
		length(e, "file", req.OriginalName, 0, 255)
	}
	if req.Size <= 0 {
		e.Add("file", "The file must not be empty.")
	}
	translatable(e, "display_name", req.DisplayName, false)
	translatable(e, "description", req.Description, false)
	return e.orNil()
}

func (v *RequestValidator) validatePage(req models.PageRequest, partial bool) error {
	e := &ValidationError{}
	if req.Slug != "" {
		length(e, "slug", req.Slug, 0, 255)
		matches(e, "slug", req.Slug, slugPattern,
			"The slug may only contain lowercase letters, digits and single hyphens.")
	}
	translatable(e, "title", req.Title, !partial || req.Title != nil)
	translatable(e, "content", req.Content, false)
	translatable(e, "meta_title", req.MetaTitle, false)
	translatable(e, "meta_description", req.MetaDescription, false)
	nonNegative(e, "sort_order", req.SortOrder)
	return e.orNil()
}
