package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

const apiPrefix = "/api/v1"

// HTTPConfig configures [NewHTTPServerAdapter].
type HTTPConfig struct {
	// Address is the server base URL; a bare host:port gets "http://".
	Address string

	RequestTimeout time.Duration

	// Locale is sent as Accept-Language.
	Locale string
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. It returns an error when cfg.Address is not a usable URL.
func NewHTTPServerAdapter(cfg HTTPConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if cfg.RequestTimeout > 0 {
		client.SetTimeout(cfg.RequestTimeout)
	}
	if cfg.Locale != "" {
		client.SetHeader("Accept-Language", cfg.Locale)
	}

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// envelope mirrors the server's response body.
type envelope[T any] struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       T                  `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
	Stats      json.RawMessage    `json:"stats"`
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return h.request(ctx).SetAuthToken(token), nil
}

// send executes req and decodes the envelope of a successful response.
func send[T any](h *httpServerAdapter, req *resty.Request, method, path string) (envelope[T], error) {
	var env envelope[T]

	resp, err := req.Execute(method, apiPrefix+path)
	if err != nil {
		return env, fmt.Errorf("%s %s: %w", method, path, err)
	}
	h.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode()).Msg("api call")

	if err = mapHTTPError(resp); err != nil {
		return env, err
	}
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return env, fmt.Errorf("%w: decode %s %s: %w", ErrUnexpectedResponse, method, path, err)
	}
	return env, nil
}

func (h *httpServerAdapter) Health(ctx context.Context) (models.Health, error) {
	resp, err := h.request(ctx).Get(apiPrefix + "/health")
	if err != nil {
		return models.Health{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Health{}, err
	}

	var health models.Health
	if err = json.Unmarshal(resp.Body(), &health); err != nil {
		return models.Health{}, fmt.Errorf("%w: decode health: %w", ErrUnexpectedResponse, err)
	}
	return health, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).SetHeader("Accept", "text/plain").Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	env, err := send[models.AuthResult](h, h.request(ctx).SetBody(req), resty.MethodPost, "/auth/login")
	if err != nil {
		return models.AuthResult{}, err
	}

	h.SetToken(env.Data.Token)
	return env.Data, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	if _, err = send[json.RawMessage](h, req, resty.MethodPost, "/auth/logout"); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserSummary, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserSummary{}, err
	}

	env, err := send[struct {
		User models.UserSummary `json:"user"`
	}](h, req, resty.MethodGet, "/auth/me")
	if err != nil {
		return models.UserSummary{}, err
	}
	return env.Data.User, nil
}

func (h *httpServerAdapter) CheckIdentificationNumber(ctx context.Context, number string) (models.IdentificationNumberCheck, error) {
	req := h.request(ctx).SetBody(models.CheckIDRequest{IdentificationNumber: number})

	env, err := send[models.IdentificationNumberCheck](h, req, resty.MethodPost, "/auth/check-id")
	if err != nil {
		return models.IdentificationNumberCheck{}, err
	}
	return env.Data, nil
}

func (h *httpServerAdapter) ListIdentificationNumbers(ctx context.Context, filter models.IdentificationNumberFilter) (models.IdentificationNumberPage, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.IdentificationNumberPage{}, err
	}
	req.SetQueryParams(filterQuery(filter))

	env, err := send[[]models.IdentificationNumber](h, req, resty.MethodGet, "/admin/identification-numbers")
	if err != nil {
		return models.IdentificationNumberPage{}, err
	}

	page := models.IdentificationNumberPage{Items: env.Data}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	if len(env.Stats) > 0 {
		if err = json.Unmarshal(env.Stats, &page.Stats); err != nil {
			return models.IdentificationNumberPage{}, fmt.Errorf("%w: decode stats: %w", ErrUnexpectedResponse, err)
		}
	}
	return page, nil
}

func filterQuery(filter models.IdentificationNumberFilter) map[string]string {
	params := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			params[key] = value
		}
	}
	set("status", string(filter.Status))
	set("search", filter.Search)
	set("sort_by", filter.SortBy)
	set("sort_order", filter.SortOrder)
	if filter.Page > 0 {
		params["page"] = strconv.Itoa(filter.Page)
	}
	if filter.PerPage > 0 {
		params["per_page"] = strconv.Itoa(filter.PerPage)
	}
	return params
}

func (h *httpServerAdapter) IdentificationNumberReport(ctx context.Context) (models.IdentificationNumberReport, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.IdentificationNumberReport{}, err
	}

	env, err := send[models.IdentificationNumberReport](h, req, resty.MethodGet, "/admin/identification-numbers/stats")
	if err != nil {
		return models.IdentificationNumberReport{}, err
	}
	return env.Data, nil
}

func (h *httpServerAdapter) CreateIdentificationNumberBatch(ctx context.Context, batch models.BatchRequest) (models.BatchResult, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.BatchResult{}, err
	}

	env, err := send[models.BatchResult](h, req.SetBody(batch), resty.MethodPost, "/admin/identification-numbers/batch")
	if err != nil {
		return models.BatchResult{}, err
	}
	return env.Data, nil
}

func (h *httpServerAdapter) ReleaseIdentificationNumber(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	return h.numberAction(ctx, id, "release")
}

func (h *httpServerAdapter) ToggleIdentificationNumber(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	return h.numberAction(ctx, id, "toggle-status")
}

func (h *httpServerAdapter) numberAction(ctx context.Context, id int64, action string) (models.IdentificationNumber, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.IdentificationNumber{}, err
	}

	path := fmt.Sprintf("/admin/identification-numbers/%d/%s", id, action)
	env, err := send[models.IdentificationNumber](h, req, resty.MethodPost, path)
	if err != nil {
		return models.IdentificationNumber{}, err
	}
	return env.Data, nil
}
