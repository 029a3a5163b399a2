package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is disabled, contact the administrator")
	ErrWrongPassword      = errors.New("wrong current password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenRevoked            = errors.New("token is revoked")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Identification number errors.
var (
	ErrIdentificationNumberNotFound = errors.New("identification number not found")
	ErrIdentificationNumberUsed     = errors.New("identification number is already used")
	ErrIdentificationNumberInactive = errors.New("identification number is deactivated")

	// ErrRegistrationNumberInvalid is returned by registration for a code
	// that does not exist, is used or is deactivated.
	ErrRegistrationNumberInvalid = errors.New("invalid or already used identification number")

	ErrIdentificationNumberNotInUse = errors.New("identification number is not in use")
	ErrCannotDeleteUsedNumber       = errors.New("cannot delete a used identification number")
	ErrBatchTooLarge                = errors.New("cannot create more than 100 numbers at once")
)

// Content, file and page errors.
var (
	ErrInvalidContentType   = errors.New("invalid content type")
	ErrContentNotFound      = errors.New("content not found")
	ErrContentAlreadyExists = errors.New("content of this type already exists for the specialist")
	ErrSpecialistNotFound   = errors.New("specialist not found")

	ErrFileNotFound       = errors.New("file not found")
	ErrFileAccessDenied   = errors.New("access to the file is denied")
	ErrFileInactive       = errors.New("file is not available")
	ErrStoredFileNotFound = errors.New("file is missing on the server")
	ErrFileTooLarge       = errors.New("file is too large")

	ErrPageNotFound      = errors.New("page not found")
	ErrSlugAlreadyExists = errors.New("page slug already exists")
)
