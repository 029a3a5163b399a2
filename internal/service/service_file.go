package service

import (
	"context"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/metrics"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

const specialistFilesDir = "specialist-files"

type fileService struct {
	contentRepository store.ContentRepository
	fileRepository    store.FileRepository
	fileStorage       store.FileStorage

	validator validators.Validator
	sanitizer *sanitizer
	names     *utils.UUIDGenerator

	// maxUploadSize bounds a single upload in bytes; zero disables the check.
	maxUploadSize int64

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewFileService(storages *store.Storages, validator validators.Validator, cfg config.Files, m *metrics.Metrics, logger *logger.Logger) FileService {
	return &fileService{
		contentRepository: storages.ContentRepository,
		fileRepository:    storages.FileRepository,
		fileStorage:       storages.FileStorage,
		validator:         validator,
		sanitizer:         newSanitizer(),
		names:             utils.NewUUIDGenerator(),
		maxUploadSize:     cfg.MaxUploadSize,
		metrics:           m,
		logger:            logger,
	}
}

func (s *fileService) ListByType(ctx context.Context, user models.User, contentType models.ContentType, locale string) (models.ContentByType, error) {
	if !contentType.IsValid() {
		return models.ContentByType{}, ErrInvalidContentType
	}

	content, err := s.contentRepository.FindActiveByUserAndType(ctx, user.ID, contentType)
	if errors.Is(err, store.ErrContentNotFound) {
		result := emptyContentByType()
		result.Message = ""
		return result, nil
	}
	if err != nil {
		return models.ContentByType{}, err
	}

	files, err := s.fileRepository.ListActiveByContent(ctx, content.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileService.ListByType").Int64("content_id", content.ID).Msg("error listing files")
		return models.ContentByType{}, err
	}

	view := contentView(content, locale)
	return models.ContentByType{
		Content: &view,
		Files:   filesData(files, locale, false),
		Stats:   sizeStats(files),
	}, nil
}

// ListAll returns the user's active files, flat and grouped by the type of
// their content. Every active content appears in the grouping, also when it
// has no files.
func (s *fileService) ListAll(ctx context.Context, user models.User, locale string) (models.AllFiles, error) {
	contents, files, err := s.load(ctx, user)
	if err != nil {
		return models.AllFiles{}, err
	}

	byType := make(map[models.ContentType]models.FilesOfType, len(contents))
	for _, c := range contents {
		byType[c.ContentType] = models.FilesOfType{
			TypeName: c.ContentType.Name(locale),
			Files:    []models.FileData{},
		}
	}

	all := make([]models.FileData, 0, len(files))
	var totalSize int64
	for _, f := range files {
		data := fileData(f, locale, true)
		all = append(all, data)
		totalSize += f.FileSize

		group := byType[f.ContentType]
		group.Files = append(group.Files, data)
		group.Count++
		group.Size += f.FileSize
		byType[f.ContentType] = group
	}

	return models.AllFiles{
		AllFiles: all,
		ByType:   byType,
		Stats: models.AllFilesStats{
			TotalFiles:    len(all),
			TotalSize:     totalSize,
			FormattedSize: utils.FormatFileSize(totalSize),
			TypesCount:    len(byType),
		},
	}, nil
}

func (s *fileService) Stats(ctx context.Context, user models.User, locale string) (models.FileStats, error) {
	contents, files, err := s.load(ctx, user)
	if err != nil {
		return models.FileStats{}, err
	}

	byType := make(map[models.ContentType]models.TypeFileStats, len(contents))
	for _, c := range contents {
		byType[c.ContentType] = models.TypeFileStats{TypeName: c.ContentType.Name(locale)}
	}

	var totalSize int64
	for _, f := range files {
		totalSize += f.FileSize

		t := byType[f.ContentType]
		t.FilesCount++
		t.TotalSize += f.FileSize
		byType[f.ContentType] = t
	}
	for k, t := range byType {
		t.FormattedSize = utils.FormatFileSize(t.TotalSize)
		byType[k] = t
	}

	return models.FileStats{
		TotalFiles:    len(files),
		TotalSize:     totalSize,
		FormattedSize: utils.FormatFileSize(totalSize),
		ByType:        byType,
		ContentPages:  len(contents),
	}, nil
}

func (s *fileService) load(ctx context.Context, user models.User) ([]models.SpecialistContent, []models.SpecialistFile, error) {
	contents, err := s.contentRepository.ListActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	files, err := s.fileRepository.ListActiveByUser(ctx, user.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileService.load").Int64("user_id", user.ID).Msg("error listing files")
		return nil, nil, err
	}

	return contents, files, nil
}

func (s *fileService) Info(ctx context.Context, user models.User, fileID int64, locale string) (models.FileInfo, error) {
	file, err := s.ownedFile(ctx, user, fileID)
	if err != nil {
		return models.FileInfo{}, err
	}

	data := fileData(file, locale, false)
	return models.FileInfo{
		FileData:  data,
		IsActive:  file.IsActive,
		UpdatedAt: file.UpdatedAt,
		Content: models.FileContentInfo{
			Type:     file.ContentType,
			TypeName: file.ContentType.Name(locale),
		},
	}, nil
}

// Download refuses a foreign file with ErrFileAccessDenied, an inactive one
// with ErrFileInactive and a file missing from the storage with
// ErrStoredFileNotFound. The download counter changes only on success.
func (s *fileService) Download(ctx context.Context, user models.User, fileID int64) (models.DownloadableFile, error) {
	log := logger.FromContext(ctx)

	file, err := s.ownedFile(ctx, user, fileID)
	if err != nil {
		return models.DownloadableFile{}, err
	}
	if !file.IsActive {
		return models.DownloadableFile{}, ErrFileInactive
	}

	body, size, err := s.fileStorage.Open(ctx, file.FilePath)
	if errors.Is(err, store.ErrStoredFileNotFound) || errors.Is(err, store.ErrInvalidStoredPath) {
		log.Warn().Int64("file_id", file.ID).Str("path", file.FilePath).Msg("stored file is missing")
		return models.DownloadableFile{}, ErrStoredFileNotFound
	}
	if err != nil {
		return models.DownloadableFile{}, err
	}

	if size != file.FileSize {
		log.Warn().Int64("file_id", file.ID).Int64("recorded", file.FileSize).Int64("stored", size).Msg("stored file size differs from record")
	}

	if err = s.fileRepository.IncrementDownloadCount(ctx, file.ID); err != nil {
		_ = body.Close()
		log.Err(err).Str("func", "*fileService.Download").Int64("file_id", file.ID).Msg("error counting download")
		return models.DownloadableFile{}, err
	}
	file.DownloadCount++

	s.metrics.IncDownload()
	return models.DownloadableFile{File: file, Body: body, Size: size}, nil
}

func (s *fileService) ownedFile(ctx context.Context, user models.User, fileID int64) (models.SpecialistFile, error) {
	file, err := s.fileRepository.FindByID(ctx, fileID)
	if errors.Is(err, store.ErrFileNotFound) {
		return models.SpecialistFile{}, ErrFileNotFound
	}
	if err != nil {
		return models.SpecialistFile{}, err
	}

	if !file.BelongsToUser(user.ID) {
		logger.FromContext(ctx).Warn().Int64("file_id", fileID).Int64("user_id", user.ID).Msg("file access denied")
		return models.SpecialistFile{}, ErrFileAccessDenied
	}
	return file, nil
}

// Upload stores body under a generated name and records the file. The
// stored file is removed again when the record cannot be created.
func (s *fileService) Upload(ctx context.Context, upload models.FileUpload, body io.Reader) (models.SpecialistFile, error) {
	log := logger.FromContext(ctx).With().Int64("content_id", upload.ContentID).Logger()

	if err := s.validator.Validate(ctx, upload); err != nil {
		return models.SpecialistFile{}, err
	}
	if s.maxUploadSize > 0 && upload.Size > s.maxUploadSize {
		return models.SpecialistFile{}, ErrFileTooLarge
	}

	content, err := s.contentRepository.FindByID(ctx, upload.ContentID)
	if errors.Is(err, store.ErrContentNotFound) {
		return models.SpecialistFile{}, ErrContentNotFound
	}
	if err != nil {
		return models.SpecialistFile{}, err
	}

	fileName := s.names.Generate()
	if ext := strings.ToLower(path.Ext(upload.OriginalName)); ext != "" {
		fileName += ext
	}
	filePath := path.Join(specialistFilesDir, strconv.FormatInt(content.UserID, 10), fileName)

	reader := body
	if s.maxUploadSize > 0 {
		reader = io.LimitReader(body, s.maxUploadSize+1)
	}

	written, err := s.fileStorage.Save(ctx, filePath, reader)
	if err != nil {
		log.Err(err).Str("func", "*fileService.Upload").Msg("error storing uploaded file")
		return models.SpecialistFile{}, err
	}
	if s.maxUploadSize > 0 && written > s.maxUploadSize {
		s.removeStored(ctx, filePath)
		return models.SpecialistFile{}, ErrFileTooLarge
	}

	mimeType := upload.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	created, err := s.fileRepository.Create(ctx, models.SpecialistFile{
		ContentID:    content.ID,
		OriginalName: path.Base(upload.OriginalName),
		FileName:     fileName,
		FilePath:     filePath,
		MimeType:     mimeType,
		FileSize:     written,
		DisplayName:  s.sanitizer.Text(upload.DisplayName),
		Description:  s.sanitizer.Text(upload.Description),
		IsActive:     true,
	})
	if err != nil {
		s.removeStored(ctx, filePath)
		log.Err(err).Str("func", "*fileService.Upload").Msg("error recording uploaded file")
		return models.SpecialistFile{}, err
	}

	log.Info().Int64("file_id", created.ID).Str("path", filePath).Int64("size", written).Msg("file uploaded")
	return created, nil
}

// Delete removes the record first; a failure to remove the stored file
// afterwards is only logged.
func (s *fileService) Delete(ctx context.Context, fileID int64) error {
	file, err := s.fileRepository.FindByID(ctx, fileID)
	if errors.Is(err, store.ErrFileNotFound) {
		return ErrFileNotFound
	}
	if err != nil {
		return err
	}

	if err = s.fileRepository.Delete(ctx, file.ID); err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return ErrFileNotFound
		}
		return err
	}

	s.removeStored(ctx, file.FilePath)
	logger.FromContext(ctx).Info().Int64("file_id", file.ID).Msg("file deleted")
	return nil
}

func (s *fileService) removeStored(ctx context.Context, filePath string) {
	if err := s.fileStorage.Delete(ctx, filePath); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileService.removeStored").Str("path", filePath).Msg("error removing stored file")
	}
}
