package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/handler/http"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/metrics"
	"github.com/MKhiriev/med-cms/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg.Server. gatherer
// backs the /metrics endpoint.
func NewHandlers(services *service.Services, cfg config.StructuredConfig, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, m, gatherer, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
