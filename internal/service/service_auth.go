package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/metrics"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

// authService is the concrete implementation of AuthService.
// It handles login, specialist registration and the JWT lifecycle. Revoked
// token IDs are kept in a TokenRevocationStore until the token expires.
type authService struct {
	// transactor runs registration as one unit of work.
	transactor store.Transactor

	userRepository   store.UserRepository
	numberRepository store.IdentificationNumberRepository

	// revocations remembers the jti of every logged out token.
	revocations store.TokenRevocationStore

	hasher *utils.PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewAuthService constructs a new AuthService over the given storages,
// populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(storages *store.Storages, hasher *utils.PasswordHasher, cfg config.App, m *metrics.Metrics, logger *logger.Logger) AuthService {
	return &authService{
		transactor:       storages.Transactor,
		userRepository:   storages.UserRepository,
		numberRepository: storages.IdentificationNumberRepository,
		revocations:      storages.TokenRevocationStore,
		hasher:           hasher,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		metrics:          m,
		logger:           logger,
	}
}

// Login authenticates an account by email and password.
//
// Returns:
//   - ErrInvalidCredentials if the email is unknown or the password is wrong.
//   - ErrAccountInactive if the account is disabled.
//   - A wrapped error if the lookup, the last-login update or token issuing fails.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, store.ErrUserNotFound) {
		a.metrics.IncLogin(metrics.ResultInvalid)
		return models.AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		a.metrics.IncLogin(metrics.ResultError)
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = a.hasher.Compare(user.Password, req.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			a.metrics.IncLogin(metrics.ResultInvalid)
			log.Info().Int64("user_id", user.ID).Msg("wrong password")
			return models.AuthResult{}, ErrInvalidCredentials
		}
		a.metrics.IncLogin(metrics.ResultError)
		return models.AuthResult{}, err
	}

	if !user.IsActive {
		a.metrics.IncLogin(metrics.ResultInactive)
		return models.AuthResult{}, ErrAccountInactive
	}

	now := time.Now().UTC()
	if err = a.userRepository.UpdateLastLogin(ctx, user.ID, now); err != nil {
		a.metrics.IncLogin(metrics.ResultError)
		log.Err(err).Str("func", "*authService.Login").Int64("user_id", user.ID).Msg("error updating last login time")
		return models.AuthResult{}, fmt.Errorf("error updating last login time: %w", err)
	}
	user.LastLoginAt = &now

	token, err := a.createToken(user)
	if err != nil {
		a.metrics.IncLogin(metrics.ResultError)
		return models.AuthResult{}, err
	}

	a.metrics.IncLogin(metrics.ResultSuccess)
	return models.NewAuthResult(user.Summary(), token), nil
}

// RegisterSpecialist creates a specialist account bound to an
// identification number.
//
// The lookup of the number, the user insert and the conditional update that
// marks the number as used run in one transaction: a number consumed
// concurrently makes the update match no row and the user insert is rolled
// back.
//
// Returns:
//   - ErrRegistrationNumberInvalid wrapping ErrIdentificationNumberNotFound,
//     ErrIdentificationNumberUsed or ErrIdentificationNumberInactive.
//   - A *validators.ValidationError if the email is already registered.
//   - A wrapped error for any other failure.
func (a *authService) RegisterSpecialist(ctx context.Context, req models.RegisterSpecialistRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		a.metrics.IncRegistration(metrics.ResultError)
		return models.AuthResult{}, err
	}

	var (
		user   models.User
		number models.IdentificationNumber
	)
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		number, err = a.numberRepository.FindByNumber(ctx, req.IdentificationNumber)
		if errors.Is(err, store.ErrIdentificationNumberNotFound) {
			return fmt.Errorf("%w: %w", ErrRegistrationNumberInvalid, ErrIdentificationNumberNotFound)
		}
		if err != nil {
			return err
		}
		if err = availability(number); err != nil {
			return fmt.Errorf("%w: %w", ErrRegistrationNumberInvalid, err)
		}

		user, err = a.userRepository.CreateUser(ctx, models.User{
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			HospitalName: strings.TrimSpace(req.HospitalName),
			Email:        req.Email,
			Password:     passwordHash,
			Role:         models.RoleSpecialist,
			IsActive:     true,
		})
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return validators.NewValidationError("email", "The email has already been taken.")
		}
		if err != nil {
			return err
		}

		err = a.numberRepository.MarkAsUsed(ctx, number.Number, user.ID, time.Now())
		if errors.Is(err, store.ErrIdentificationNumberUnavailable) {
			return fmt.Errorf("%w: %w", ErrRegistrationNumberInvalid, ErrIdentificationNumberUsed)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrRegistrationNumberInvalid) || errors.Is(err, validators.ErrValidation) {
			a.metrics.IncRegistration(metrics.ResultRejected)
			log.Info().Str("identification_number", req.IdentificationNumber).Str("reason", err.Error()).Msg("registration refused")
			return models.AuthResult{}, err
		}
		a.metrics.IncRegistration(metrics.ResultError)
		log.Err(err).Str("func", "*authService.RegisterSpecialist").Msg("registration ended with error")
		return models.AuthResult{}, fmt.Errorf("registration ended with error: %w", err)
	}

	token, err := a.createToken(user)
	if err != nil {
		a.metrics.IncRegistration(metrics.ResultError)
		return models.AuthResult{}, err
	}

	a.metrics.IncRegistration(metrics.ResultSuccess)
	log.Info().Int64("user_id", user.ID).Str("identification_number", number.Number).Msg("specialist registered")

	summary := user.Summary()
	summary.IdentificationNumber = number.Number
	return models.NewAuthResult(summary, token), nil
}

// CheckIdentificationNumber returns ErrIdentificationNumberNotFound,
// ErrIdentificationNumberUsed or ErrIdentificationNumberInactive for a code
// that cannot be used for registration.
func (a *authService) CheckIdentificationNumber(ctx context.Context, req models.CheckIDRequest) (models.IdentificationNumberCheck, error) {
	number, err := a.numberRepository.FindByNumber(ctx, req.IdentificationNumber)
	if errors.Is(err, store.ErrIdentificationNumberNotFound) {
		return models.IdentificationNumberCheck{}, ErrIdentificationNumberNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CheckIdentificationNumber").Msg("identification number lookup failed")
		return models.IdentificationNumberCheck{}, err
	}

	if err = availability(number); err != nil {
		return models.IdentificationNumberCheck{}, err
	}

	return models.IdentificationNumberCheck{
		CanRegister: true,
		Description: number.DescriptionText(),
	}, nil
}

// availability tells why a code cannot be used; a used code is reported
// before a deactivated one.
func availability(number models.IdentificationNumber) error {
	switch {
	case number.IsUsed:
		return ErrIdentificationNumberUsed
	case !number.IsActive:
		return ErrIdentificationNumberInactive
	}
	return nil
}

// Authenticate validates the signature, issuer and expiry of tokenString,
// rejects revoked tokens and loads the token's user.
//
// Every validation failure is normalised to ErrTokenIsExpiredOrInvalid or
// ErrTokenRevoked so that callers do not need to inspect low-level JWT errors.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("token validation failed")
		return models.User{}, models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	if token.ID != "" {
		revoked, err := a.revocations.IsRevoked(ctx, token.ID)
		if err != nil {
			log.Err(err).Str("func", "*authService.Authenticate").Msg("error checking token revocation")
			return models.User{}, models.Token{}, err
		}
		if revoked {
			return models.User{}, models.Token{}, ErrTokenRevoked
		}
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Int64("user_id", token.UserID).Msg("error loading token owner")
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

func (a *authService) Logout(ctx context.Context, token models.Token) error {
	if token.ID == "" {
		return ErrTokenIsExpiredOrInvalid
	}

	if err := a.revocations.Revoke(ctx, token.ID, token.Expiry()); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Int64("user_id", token.UserID).Msg("error revoking token")
		return err
	}
	return nil
}

func (a *authService) PruneRevokedTokens(ctx context.Context) (int64, error) {
	pruned, err := a.revocations.PruneExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	a.metrics.AddPrunedTokens(pruned)
	return pruned, nil
}

func (a *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return ErrInvalidDataProvided
	}

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	if err == nil {
		log.Debug().Str("email", email).Msg("administrator account already exists")
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return err
	}

	admin, err := a.userRepository.CreateUser(ctx, models.User{
		FirstName: "Administrator",
		Email:     email,
		Password:  hash,
		Role:      models.RoleAdmin,
		IsActive:  true,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.EnsureAdmin").Msg("error creating administrator")
		return fmt.Errorf("error creating administrator: %w", err)
	}

	log.Info().Int64("user_id", admin.ID).Str("email", email).Msg("administrator account created")
	return nil
}

// createToken issues a signed JWT for the given user.
func (a *authService) createToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}
