package client

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/med-cms/internal/adapter"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

type fakeServer struct {
	token string

	LoginFn   func(models.LoginRequest) (models.AuthResult, error)
	CheckFn   func(string) (models.IdentificationNumberCheck, error)
	ListFn    func(models.IdentificationNumberFilter) (models.IdentificationNumberPage, error)
	BatchFn   func(models.BatchRequest) (models.BatchResult, error)
	ReleaseFn func(int64) (models.IdentificationNumber, error)
	ToggleFn  func(int64) (models.IdentificationNumber, error)
}

var _ adapter.ServerAdapter = (*fakeServer)(nil)

func (f *fakeServer) SetToken(token string) { f.token = token }
func (f *fakeServer) Token() string         { return f.token }

func (f *fakeServer) Health(context.Context) (models.Health, error) {
	return models.Health{Success: true, Message: "API is running"}, nil
}

func (f *fakeServer) Version(context.Context) (string, error) { return "Build version: 1.2.3", nil }

func (f *fakeServer) Login(_ context.Context, req models.LoginRequest) (models.AuthResult, error) {
	return f.LoginFn(req)
}

func (f *fakeServer) Logout(context.Context) error {
	if f.token == "" {
		return adapter.ErrNotLoggedIn
	}
	f.token = ""
	return nil
}

func (f *fakeServer) Me(context.Context) (models.UserSummary, error) {
	return models.UserSummary{ID: 1, Email: "admin@example.org"}, nil
}

func (f *fakeServer) CheckIdentificationNumber(_ context.Context, number string) (models.IdentificationNumberCheck, error) {
	return f.CheckFn(number)
}

func (f *fakeServer) ListIdentificationNumbers(_ context.Context, filter models.IdentificationNumberFilter) (models.IdentificationNumberPage, error) {
	return f.ListFn(filter)
}

func (f *fakeServer) IdentificationNumberReport(context.Context) (models.IdentificationNumberReport, error) {
	return models.IdentificationNumberReport{Overall: models.IdentificationNumberStats{Total: 4}}, nil
}

func (f *fakeServer) CreateIdentificationNumberBatch(_ context.Context, req models.BatchRequest) (models.BatchResult, error) {
	return f.BatchFn(req)
}

func (f *fakeServer) ReleaseIdentificationNumber(_ context.Context, id int64) (models.IdentificationNumber, error) {
	return f.ReleaseFn(id)
}

func (f *fakeServer) ToggleIdentificationNumber(_ context.Context, id int64) (models.IdentificationNumber, error) {
	return f.ToggleFn(id)
}

func run(t *testing.T, server *fakeServer, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := NewApp(server, &out, logger.Nop()).Run(context.Background(), args)
	return out.String(), err
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no command", args: nil, wantErr: ErrUsage},
		{name: "unknown command", args: []string{"sync"}, wantErr: ErrUnknownCommand},
		{name: "unknown ids command", args: []string{"ids", "purge"}, wantErr: ErrUnknownCommand},
		{name: "ids without subcommand", args: []string{"ids"}, wantErr: ErrUsage},
		{name: "login without password", args: []string{"login", "-email", "a@b.c"}, wantErr: ErrUsage},
		{name: "check-id without number", args: []string{"check-id"}, wantErr: ErrUsage},
		{name: "release with bad id", args: []string{"ids", "release", "abc"}, wantErr: ErrUsage},
		{name: "toggle with zero id", args: []string{"ids", "toggle", "0"}, wantErr: ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, &fakeServer{}, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRun_Health(t *testing.T) {
	out, err := run(t, &fakeServer{}, "health")
	require.NoError(t, err)

	var health models.Health
	require.NoError(t, json.Unmarshal([]byte(out), &health))
	assert.True(t, health.Success)
}

func TestRun_Version(t *testing.T) {
	out, err := run(t, &fakeServer{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "Build version: 1.2.3\n", out)
}

func TestRun_Login(t *testing.T) {
	server := &fakeServer{
		LoginFn: func(req models.LoginRequest) (models.AuthResult, error) {
			assert.Equal(t, models.LoginRequest{Email: "admin@example.org", Password: "secret"}, req)
			return models.AuthResult{Token: "tok", TokenType: "Bearer"}, nil
		},
	}

	out, err := run(t, server, "login", "-email", "admin@example.org", "-password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, `"token": "tok"`)
}

func TestRun_LoginRefused(t *testing.T) {
	server := &fakeServer{
		LoginFn: func(models.LoginRequest) (models.AuthResult, error) {
			return models.AuthResult{}, adapter.ErrUnauthorized
		},
	}

	out, err := run(t, server, "login", "-email", "admin@example.org", "-password", "wrong")
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Empty(t, out)
}

func TestRun_Logout(t *testing.T) {
	server := &fakeServer{token: "tok"}

	out, err := run(t, server, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, `"logged_out": true`)
	assert.Empty(t, server.token)

	_, err = run(t, server, "logout")
	assert.ErrorIs(t, err, adapter.ErrNotLoggedIn)
}

func TestRun_CheckID(t *testing.T) {
	server := &fakeServer{
		CheckFn: func(number string) (models.IdentificationNumberCheck, error) {
			assert.Equal(t, "CARD-001", number)
			return models.IdentificationNumberCheck{CanRegister: true, Description: "Cardiology"}, nil
		},
	}

	out, err := run(t, server, "check-id", "CARD-001")
	require.NoError(t, err)
	assert.Contains(t, out, `"can_register": true`)
}

func TestRun_IdsList(t *testing.T) {
	server := &fakeServer{
		ListFn: func(filter models.IdentificationNumberFilter) (models.IdentificationNumberPage, error) {
			assert.Equal(t, models.IdentificationNumberFilter{
				Status:    models.StatusUsed,
				Search:    "NEU",
				SortBy:    "number",
				SortOrder: "asc",
				Page:      2,
				PerPage:   10,
			}, filter)
			return models.IdentificationNumberPage{
				Items:      []models.IdentificationNumber{{ID: 3, Number: "NEU-3", IsUsed: true}},
				Pagination: models.NewPagination(2, 10, 11),
			}, nil
		},
	}

	out, err := run(t, server, "ids", "list",
		"-status", "used", "-search", "NEU", "-sort-by", "number", "-sort-order", "asc", "-page", "2", "-per-page", "10")
	require.NoError(t, err)

	var got struct {
		Items      []models.IdentificationNumber `json:"items"`
		Pagination models.Pagination             `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "NEU-3", got.Items[0].Number)
	assert.Equal(t, 2, got.Pagination.LastPage)
}

func TestRun_IdsBatch(t *testing.T) {
	server := &fakeServer{
		BatchFn: func(req models.BatchRequest) (models.BatchResult, error) {
			assert.Equal(t, "NEU-", req.Prefix)
			assert.Equal(t, 1, req.Start)
			assert.Equal(t, 5, req.End)
			require.NotNil(t, req.Description)
			assert.Equal(t, "Neurology", *req.Description)
			return models.BatchResult{CreatedCount: 5}, nil
		},
	}

	out, err := run(t, server, "ids", "batch", "-prefix", "NEU-", "-start", "1", "-end", "5", "-description", "Neurology")
	require.NoError(t, err)
	assert.Contains(t, out, `"created_count": 5`)
}

func TestRun_IdsReleaseAndToggle(t *testing.T) {
	var released, toggled int64
	server := &fakeServer{
		ReleaseFn: func(id int64) (models.IdentificationNumber, error) {
			released = id
			return models.IdentificationNumber{ID: id}, nil
		},
		ToggleFn: func(id int64) (models.IdentificationNumber, error) {
			toggled = id
			return models.IdentificationNumber{ID: id, IsActive: true}, nil
		},
	}

	_, err := run(t, server, "ids", "release", "12")
	require.NoError(t, err)
	_, err = run(t, server, "ids", "toggle", "13")
	require.NoError(t, err)

	assert.Equal(t, int64(12), released)
	assert.Equal(t, int64(13), toggled)
}

func TestRun_IdsStats(t *testing.T) {
	out, err := run(t, &fakeServer{}, "ids", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 4`)
}
