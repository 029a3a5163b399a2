package http

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/med-cms/internal/i18n"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/metrics"
	"github.com/MKhiriev/med-cms/internal/utils"
)

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
		wantSame       bool
	}{
		{name: "request trace ID is reused", requestTraceID: "my-custom-trace-id", wantSame: true},
		{name: "missing trace ID is generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			var ctxLogger *logger.Logger
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = logger.FromRequest(r)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.requestTraceID, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
			assert.NotNil(t, ctxLogger)
		})
	}
}

func TestWithLogging_ObservesRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := &Handler{logger: logger.Nop(), metrics: metrics.New(reg)}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.HTTPRequests.WithLabelValues(http.MethodPost, "418")))
}

func TestWithLogging_ImplicitOK(t *testing.T) {
	h := &Handler{logger: logger.Nop(), metrics: metrics.New(prometheus.NewRegistry())}

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.HTTPRequests.WithLabelValues(http.MethodGet, "200")))
}

func TestWithLocale(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		want           string
	}{
		{name: "query wins", target: "/?locale=en", acceptLanguage: "be", want: "en"},
		{name: "accept-language", target: "/", acceptLanguage: "be-BY,be;q=0.9", want: "be"},
		{name: "unsupported query falls back to header", target: "/?locale=de", acceptLanguage: "en-US", want: "en"},
		{name: "nothing supported", target: "/?locale=fr", acceptLanguage: "de-DE", want: "ru"},
		{name: "nothing given", target: "/", want: "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{locales: i18n.NewMatcher("ru"), logger: logger.Nop()}
			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = utils.GetLocaleFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			rec := httptest.NewRecorder()
			h.withLocale(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, rec.Header().Get("Content-Language"))
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	assert.Nil(t, newIPRateLimiter(0, 5))

	l := newIPRateLimiter(0.001, 2)
	require.NotNil(t, l)

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"), "buckets are per client")
}

func TestIPRateLimiter_ResetsWhenFull(t *testing.T) {
	l := newIPRateLimiter(0.001, 1)
	for i := 0; i < maxTrackedClients; i++ {
		l.allow(uuid.NewString())
	}
	require.Len(t, l.limiters, maxTrackedClients)

	l.allow("10.0.0.1")

	assert.Len(t, l.limiters, 1)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:53211"
	assert.Equal(t, "192.0.2.10", clientIP(req))

	req.RemoteAddr = "192.0.2.11"
	assert.Equal(t, "192.0.2.11", clientIP(req))
}

func TestWithRealIP(t *testing.T) {
	tests := []struct {
		name       string
		proxies    []netip.Prefix
		remoteAddr string
		forwarded  string
		want       string
	}{
		{name: "no trusted proxies", remoteAddr: "203.0.113.5:1000", forwarded: "198.51.100.1", want: "203.0.113.5:1000"},
		{
			name:       "untrusted peer",
			proxies:    []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
			remoteAddr: "203.0.113.5:1000",
			forwarded:  "198.51.100.1",
			want:       "203.0.113.5:1000",
		},
		{
			name:       "trusted peer",
			proxies:    []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
			remoteAddr: "10.9.8.7:1000",
			forwarded:  "198.51.100.1",
			want:       "198.51.100.1",
		},
		{
			name:       "trusted ipv4-mapped peer",
			proxies:    []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
			remoteAddr: "[::ffff:10.9.8.7]:1000",
			forwarded:  "198.51.100.1",
			want:       "198.51.100.1",
		},
		{
			name:       "unparsable peer",
			proxies:    []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
			remoteAddr: "pipe",
			forwarded:  "198.51.100.1",
			want:       "pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{trustedProxies: tt.proxies}

			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = r.RemoteAddr })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Forwarded-For", tt.forwarded)
			h.withRealIP(next).ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}
