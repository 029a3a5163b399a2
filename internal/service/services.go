package service

import (
	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/metrics"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/internal/validators"
)

type Services struct {
	AuthService                 AuthService
	IdentificationNumberService IdentificationNumberService
	ProfileService              ProfileService
	ContentService              ContentService
	FileService                 FileService
	PageService                 PageService
	AppInfoService              AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	hasher := utils.NewPasswordHasher(cfg.Security.BcryptCost)
	validator := validators.NewRequestValidator()

	authService := NewAuthValidationService(validator).
		Wrap(NewAuthService(storages, hasher, cfg.App, m, logger))

	return &Services{
		AuthService:                 authService,
		IdentificationNumberService: NewIdentificationNumberService(storages.IdentificationNumberRepository, validator, m, logger),
		ProfileService:              NewProfileService(storages, hasher, validator, logger),
		ContentService:              NewContentService(storages, validator, logger),
		FileService:                 NewFileService(storages, validator, cfg.Storage.Files, m, logger),
		PageService:                 NewPageService(storages, validator, logger),
		AppInfoService:              appInfoService,
	}, nil
}
