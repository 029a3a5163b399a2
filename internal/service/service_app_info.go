package service

import (
	"context"
	"time"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

// healthFeatures are the capabilities advertised by the health endpoint.
var healthFeatures = []string{
	"basic_cms",
	"user_roles",
	"multilingual",
	"specialist_profile",
	"file_management",
	"content_pages",
	"identification_numbers",
}

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) Health(ctx context.Context) models.Health {
	features := make(map[string]bool, len(healthFeatures))
	for _, f := range healthFeatures {
		features[f] = true
	}

	return models.Health{
		Success:   true,
		Message:   "API is working",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.appVersion,
		Features:  features,
	}
}
