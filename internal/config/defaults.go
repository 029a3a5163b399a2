package config

import "time"

// Default values used when no source sets a field.
const (
	DefaultHTTPAddress        = "localhost:8080"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultTokenIssuer        = "med-cms"
	DefaultTokenDuration      = 24 * time.Hour
	DefaultVersion            = "1.0.0"
	DefaultLocale             = "ru"
	DefaultLogLevel           = "info"
	DefaultUploadDir          = "storage/uploads"
	DefaultMaxUploadSize      = 50 << 20
	DefaultMaxOpenConns       = 10
	DefaultBcryptCost         = 12
	DefaultLoginRateLimit     = 1.0
	DefaultLoginBurst         = 5
	DefaultTokenPruneInterval = time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			Version:       DefaultVersion,
			DefaultLocale: DefaultLocale,
			LogLevel:      DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: DefaultMaxOpenConns,
			},
			Files: Files{
				UploadDir:     DefaultUploadDir,
				MaxUploadSize: DefaultMaxUploadSize,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Security: Security{
			BcryptCost:     DefaultBcryptCost,
			LoginRateLimit: DefaultLoginRateLimit,
			LoginBurst:     DefaultLoginBurst,
		},
		Workers: Workers{
			TokenPruneInterval: DefaultTokenPruneInterval,
		},
	}
}
