package service

import (
	"context"

	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

// AuthValidationService validates request bodies before they reach the
// wrapped AuthService. Failures are returned as *validators.ValidationError.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService(validator validators.Validator) AuthServiceWrapper {
	return &AuthValidationService{
		validator: validator,
	}
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, err
	}
	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) RegisterSpecialist(ctx context.Context, req models.RegisterSpecialistRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, err
	}
	return v.inner.RegisterSpecialist(ctx, req)
}

func (v *AuthValidationService) CheckIdentificationNumber(ctx context.Context, req models.CheckIDRequest) (models.IdentificationNumberCheck, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.IdentificationNumberCheck{}, err
	}
	return v.inner.CheckIdentificationNumber(ctx, req)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, tokenString string) (models.User, models.Token, error) {
	return v.inner.Authenticate(ctx, tokenString)
}

func (v *AuthValidationService) Logout(ctx context.Context, token models.Token) error {
	return v.inner.Logout(ctx, token)
}

func (v *AuthValidationService) PruneRevokedTokens(ctx context.Context) (int64, error) {
	return v.inner.PruneRevokedTokens(ctx)
}

func (v *AuthValidationService) EnsureAdmin(ctx context.Context, email, password string) error {
	return v.inner.EnsureAdmin(ctx, email, password)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}
