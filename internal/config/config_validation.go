// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var supportedLocales = map[string]struct{}{"ru": {}, "be": {}, "en": {}}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and positive duration are required", ErrInvalidAppConfigs)
	}
	if _, ok := supportedLocales[cfg.App.DefaultLocale]; !ok {
		return fmt.Errorf("%w: unsupported default locale %q", ErrInvalidAppConfigs, cfg.App.DefaultLocale)
	}
	if (cfg.App.AdminEmail == "") != (cfg.App.AdminPassword == "") {
		return fmt.Errorf("%w: admin email and admin password must be set together", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Files.UploadDir == "" || cfg.Storage.Files.MaxUploadSize <= 0 {
		return fmt.Errorf("%w: upload dir and positive max upload size are required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	if cfg.Security.BcryptCost < bcrypt.MinCost || cfg.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidSecurityConfigs, cfg.Security.BcryptCost)
	}
	if cfg.Security.LoginRateLimit <= 0 || cfg.Security.LoginBurst <= 0 {
		return fmt.Errorf("%w: login rate limit and burst must be positive", ErrInvalidSecurityConfigs)
	}
	if cfg.Security.CSRFKey != "" && len(cfg.Security.CSRFKey) != 32 {
		return fmt.Errorf("%w: csrf key must be 32 bytes", ErrInvalidSecurityConfigs)
	}
	if _, err := ParseTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSecurityConfigs, err)
	}

	if cfg.Workers.TokenPruneInterval <= 0 {
		return fmt.Errorf("%w: token prune interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
