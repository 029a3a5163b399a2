package http

import (
	"context"
	"io"

	"github.com/MKhiriev/med-cms/models"
)

// Service mocks for handler tests. Every method delegates to its Fn field
// and returns zero values when the field is nil.

type mockAuthService struct {
	loginFn              func(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	registerSpecialistFn func(ctx context.Context, req models.RegisterSpecialistRequest) (models.AuthResult, error)
	checkIDFn            func(ctx context.Context, req models.CheckIDRequest) (models.IdentificationNumberCheck, error)
	authenticateFn       func(ctx context.Context, tokenString string) (models.User, models.Token, error)
	logoutFn             func(ctx context.Context, token models.Token) error
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	if m.loginFn == nil {
		return models.AuthResult{}, nil
	}
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) RegisterSpecialist(ctx context.Context, req models.RegisterSpecialistRequest) (models.AuthResult, error) {
	if m.registerSpecialistFn == nil {
		return models.AuthResult{}, nil
	}
	return m.registerSpecialistFn(ctx, req)
}

func (m *mockAuthService) CheckIdentificationNumber(ctx context.Context, req models.CheckIDRequest) (models.IdentificationNumberCheck, error) {
	if m.checkIDFn == nil {
		return models.IdentificationNumberCheck{}, nil
	}
	return m.checkIDFn(ctx, req)
}

func (m *mockAuthService) Authenticate(ctx context.Context, tokenString string) (models.User, models.Token, error) {
	if m.authenticateFn == nil {
		return models.User{}, models.Token{}, errTestNoUser
	}
	return m.authenticateFn(ctx, tokenString)
}

func (m *mockAuthService) Logout(ctx context.Context, token models.Token) error {
	if m.logoutFn == nil {
		return nil
	}
	return m.logoutFn(ctx, token)
}

func (m *mockAuthService) PruneRevokedTokens(context.Context) (int64, error) { return 0, nil }

func (m *mockAuthService) EnsureAdmin(context.Context, string, string) error { return nil }

type mockIdentificationNumberService struct {
	listFn         func(ctx context.Context, filter models.IdentificationNumberFilter) (models.IdentificationNumberPage, error)
	reportFn       func(ctx context.Context) (models.IdentificationNumberReport, error)
	getFn          func(ctx context.Context, id int64) (models.IdentificationNumber, error)
	createFn       func(ctx context.Context, req models.IdentificationNumberRequest) (models.IdentificationNumber, error)
	updateFn       func(ctx context.Context, id int64, req models.IdentificationNumberRequest) (models.IdentificationNumber, error)
	deleteFn       func(ctx context.Context, id int64) error
	createBatchFn  func(ctx context.Context, req models.BatchRequest) (models.BatchResult, error)
	releaseFn      func(ctx context.Context, id int64) (models.IdentificationNumber, *models.UserSummary, error)
	toggleStatusFn func(ctx context.Context, id int64) (models.IdentificationNumber, error)
}

func (m *mockIdentificationNumberService) List(ctx context.Context, filter models.IdentificationNumberFilter) (models.IdentificationNumberPage, error) {
	if m.listFn == nil {
		return models.IdentificationNumberPage{}, nil
	}
	return m.listFn(ctx, filter)
}

func (m *mockIdentificationNumberService) Report(ctx context.Context) (models.IdentificationNumberReport, error) {
	if m.reportFn == nil {
		return models.IdentificationNumberReport{}, nil
	}
	return m.reportFn(ctx)
}

func (m *mockIdentificationNumberService) Get(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	if m.getFn == nil {
		return models.IdentificationNumber{}, nil
	}
	return m.getFn(ctx, id)
}

func (m *mockIdentificationNumberService) Create(ctx context.Context, req models.IdentificationNumberRequest) (models.IdentificationNumber, error) {
	if m.createFn == nil {
		return models.IdentificationNumber{}, nil
	}
	return m.createFn(ctx, req)
}

func (m *mockIdentificationNumberService) Update(ctx context.Context, id int64, req models.IdentificationNumberRequest) (models.IdentificationNumber, error) {
	if m.updateFn == nil {
		return models.IdentificationNumber{}, nil
	}
	return m.updateFn(ctx, id, req)
}

func (m *mockIdentificationNumberService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockIdentificationNumberService) CreateBatch(ctx context.Context, req models.BatchRequest) (models.BatchResult, error) {
	if m.createBatchFn == nil {
		return models.BatchResult{}, nil
	}
	return m.createBatchFn(ctx, req)
}

func (m *mockIdentificationNumberService) Release(ctx context.Context, id int64) (models.IdentificationNumber, *models.UserSummary, error) {
	if m.releaseFn == nil {
		return models.IdentificationNumber{}, nil, nil
	}
	return m.releaseFn(ctx, id)
}

func (m *mockIdentificationNumberService) ToggleStatus(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	if m.toggleStatusFn == nil {
		return models.IdentificationNumber{}, nil
	}
	return m.toggleStatusFn(ctx, id)
}

type mockProfileService struct {
	getProfileFn     func(ctx context.Context, user models.User) (models.Profile, error)
	updateProfileFn  func(ctx context.Context, user models.User, req models.UpdateProfileRequest) (models.UserSummary, error)
	changePasswordFn func(ctx context.Context, user models.User, req models.ChangePasswordRequest) error
	getActivityFn    func(ctx context.Context, user models.User, locale string) (models.Activity, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, user models.User) (models.Profile, error) {
	if m.getProfileFn == nil {
		return models.Profile{}, nil
	}
	return m.getProfileFn(ctx, user)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, user models.User, req models.UpdateProfileRequest) (models.UserSummary, error) {
	if m.updateProfileFn == nil {
		return models.UserSummary{}, nil
	}
	return m.updateProfileFn(ctx, user, req)
}

func (m *mockProfileService) ChangePassword(ctx context.Context, user models.User, req models.ChangePasswordRequest) error {
	if m.changePasswordFn == nil {
		return nil
	}
	return m.changePasswordFn(ctx, user, req)
}

func (m *mockProfileService) GetActivity(ctx context.Context, user models.User, locale string) (models.Activity, error) {
	if m.getActivityFn == nil {
		return models.Activity{}, nil
	}
	return m.getActivityFn(ctx, user, locale)
}

func (m *mockProfileService) GetSettings(context.Context, models.User) models.Settings {
	return models.DefaultSettings()
}

func (m *mockProfileService) UpdateSettings(context.Context, models.User, models.SettingsRequest) (models.Settings, error) {
	return models.DefaultSettings(), nil
}

type mockContentService struct {
	getByTypeFn func(ctx context.Context, user models.User, contentType models.ContentType, locale string) (models.ContentByType, error)
	getAllFn    func(ctx context.Context, user models.User, locale string) (models.AllContent, error)
	createFn    func(ctx context.Context, req models.ContentRequest) (models.SpecialistContent, error)
}

func (m *mockContentService) GetByType(ctx context.Context, user models.User, contentType models.ContentType, locale string) (models.ContentByType, error) {
	if m.getByTypeFn == nil {
		return models.ContentByType{}, nil
	}
	return m.getByTypeFn(ctx, user, contentType, locale)
}

func (m *mockContentService) GetAll(ctx context.Context, user models.User, locale string) (models.AllContent, error) {
	if m.getAllFn == nil {
		return models.AllContent{}, nil
	}
	return m.getAllFn(ctx, user, locale)
}

func (m *mockContentService) Meta(string) models.ContentMeta { return models.ContentMeta{} }

func (m *mockContentService) Create(ctx context.Context, req models.ContentRequest) (models.SpecialistContent, error) {
	if m.createFn == nil {
		return models.SpecialistContent{}, nil
	}
	return m.createFn(ctx, req)
}

type mockFileService struct {
	infoFn     func(ctx context.Context, user models.User, fileID int64, locale string) (models.FileInfo, error)
	downloadFn func(ctx context.Context, user models.User, fileID int64) (models.DownloadableFile, error)
	uploadFn   func(ctx context.Context, upload models.FileUpload, body io.Reader) (models.SpecialistFile, error)
	deleteFn   func(ctx context.Context, fileID int64) error
}

func (m *mockFileService) ListByType(context.Context, models.User, models.ContentType, string) (models.ContentByType, error) {
	return models.ContentByType{}, nil
}

func (m *mockFileService) ListAll(context.Context, models.User, string) (models.AllFiles, error) {
	return models.AllFiles{}, nil
}

func (m *mockFileService) Stats(context.Context, models.User, string) (models.FileStats, error) {
	return models.FileStats{}, nil
}

func (m *mockFileService) Info(ctx context.Context, user models.User, fileID int64, locale string) (models.FileInfo, error) {
	if m.infoFn == nil {
		return models.FileInfo{}, nil
	}
	return m.infoFn(ctx, user, fileID, locale)
}

func (m *mockFileService) Download(ctx context.Context, user models.User, fileID int64) (models.DownloadableFile, error) {
	if m.downloadFn == nil {
		return models.DownloadableFile{Body: io.NopCloser(nopReader{})}, nil
	}
	return m.downloadFn(ctx, user, fileID)
}

func (m *mockFileService) Upload(ctx context.Context, upload models.FileUpload, body io.Reader) (models.SpecialistFile, error) {
	if m.uploadFn == nil {
		return models.SpecialistFile{}, nil
	}
	return m.uploadFn(ctx, upload, body)
}

func (m *mockFileService) Delete(ctx context.Context, fileID int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, fileID)
}

type mockPageService struct {
	listFn   func(ctx context.Context, locale string) ([]models.PageListItem, error)
	homeFn   func(ctx context.Context, locale string) (models.PageView, error)
	bySlugFn func(ctx context.Context, slug, locale string) (models.PageView, error)
	createFn func(ctx context.Context, req models.PageRequest) (models.Page, error)
	updateFn func(ctx context.Context, id int64, req models.PageRequest) (models.Page, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockPageService) List(ctx context.Context, locale string) ([]models.PageListItem, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, locale)
}

func (m *mockPageService) Home(ctx context.Context, locale string) (models.PageView, error) {
	if m.homeFn == nil {
		return models.PageView{}, nil
	}
	return m.homeFn(ctx, locale)
}

func (m *mockPageService) Navigation(context.Context, string) ([]models.NavigationItem, error) {
	return nil, nil
}

func (m *mockPageService) BySlug(ctx context.Context, slug, locale string) (models.PageView, error) {
	if m.bySlugFn == nil {
		return models.PageView{}, nil
	}
	return m.bySlugFn(ctx, slug, locale)
}

func (m *mockPageService) Create(ctx context.Context, req models.PageRequest) (models.Page, error) {
	if m.createFn == nil {
		return models.Page{}, nil
	}
	return m.createFn(ctx, req)
}

func (m *mockPageService) Update(ctx context.Context, id int64, req models.PageRequest) (models.Page, error) {
	if m.updateFn == nil {
		return models.Page{}, nil
	}
	return m.updateFn(ctx, id, req)
}

func (m *mockPageService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string { return m.version }

func (m *mockAppInfoService) Health(context.Context) models.Health {
	return models.Health{Success: true, Message: "API is working", Version: m.version}
}

type nopReader struct{}

func (nopReader) Read([]byte) (int, error) { return 0, io.EOF }
