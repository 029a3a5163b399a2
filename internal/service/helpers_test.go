package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/metrics"
	"github.com/MKhiriev/med-cms/internal/mock"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/utils"
)

var (
	testHasher = utils.NewPasswordHasher(bcrypt.MinCost)

	testAppConfig = config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "med-cms-test",
		TokenDuration: time.Hour,
		Version:       "1.0.0",
	}
)

// storeMocks holds one gomock mock per storage of store.Storages.
type storeMocks struct {
	transactor  *mock.MockTransactor
	users       *mock.MockUserRepository
	numbers     *mock.MockIdentificationNumberRepository
	contents    *mock.MockContentRepository
	files       *mock.MockFileRepository
	pages       *mock.MockPageRepository
	revocations *mock.MockTokenRevocationStore
	fileStorage *mock.MockFileStorage
}

func newStoreMocks(t *testing.T) (*storeMocks, *store.Storages) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &storeMocks{
		transactor:  mock.NewMockTransactor(ctrl),
		users:       mock.NewMockUserRepository(ctrl),
		numbers:     mock.NewMockIdentificationNumberRepository(ctrl),
		contents:    mock.NewMockContentRepository(ctrl),
		files:       mock.NewMockFileRepository(ctrl),
		pages:       mock.NewMockPageRepository(ctrl),
		revocations: mock.NewMockTokenRevocationStore(ctrl),
		fileStorage: mock.NewMockFileStorage(ctrl),
	}

	return m, &store.Storages{
		Transactor:                     m.transactor,
		UserRepository:                 m.users,
		IdentificationNumberRepository: m.numbers,
		ContentRepository:              m.contents,
		FileRepository:                 m.files,
		PageRepository:                 m.pages,
		TokenRevocationStore:           m.revocations,
		FileStorage:                    m.fileStorage,
	}
}

// expectTransaction makes the transactor run fn directly and return its
// error, as a committed or rolled back transaction would.
func (m *storeMocks) expectTransaction() {
	m.transactor.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := testHasher.Hash(password)
	require.NoError(t, err)
	return hash
}

func ptr[T any](v T) *T {
	return &v
}
