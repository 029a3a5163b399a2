package http

import (
	"net/http"
	"net/netip"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/i18n"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/metrics"
	"github.com/MKhiriev/med-cms/internal/service"
)

type Handler struct {
	services *service.Services

	locales      *i18n.Matcher
	loginLimiter *ipRateLimiter
	security     config.Security

	// trustedProxies may set the client address through forwarding headers.
	trustedProxies []netip.Prefix

	// maxUploadSize bounds multipart upload bodies; zero disables the bound.
	maxUploadSize int64

	metrics        *metrics.Metrics
	metricsHandler http.Handler

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. gatherer backs GET /metrics; a nil
// gatherer exposes the default Prometheus registry.
func NewHandler(services *service.Services, cfg config.StructuredConfig, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *logger.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	proxies, err := config.ParseTrustedProxies(cfg.Security.TrustedProxies)
	if err != nil {
		logger.Warn().Err(err).Msg("forwarding headers ignored")
		proxies = nil
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		trustedProxies: proxies,
		services:       services,
		locales:        i18n.NewMatcher(cfg.App.DefaultLocale),
		loginLimiter:   newIPRateLimiter(cfg.Security.LoginRateLimit, cfg.Security.LoginBurst),
		security:       cfg.Security,
		maxUploadSize:  cfg.Storage.Files.MaxUploadSize,
		metrics:        m,
		metricsHandler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		logger:         logger,
	}
}
