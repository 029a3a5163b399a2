package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

type contentService struct {
	userRepository    store.UserRepository
	contentRepository store.ContentRepository
	fileRepository    store.FileRepository

	validator validators.Validator
	sanitizer *sanitizer

	logger *logger.Logger
}

func NewContentService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) ContentService {
	return &contentService{
		userRepository:    storages.UserRepository,
		contentRepository: storages.ContentRepository,
		fileRepository:    storages.FileRepository,
		validator:         validator,
		sanitizer:         newSanitizer(),
		logger:            logger,
	}
}

// GetByType returns the active content of one type with its active files.
// A specialist without such content gets an empty payload, not an error.
func (s *contentService) GetByType(ctx context.Context, user models.User, contentType models.ContentType, locale string) (models.ContentByType, error) {
	if !contentType.IsValid() {
		return models.ContentByType{}, ErrInvalidContentType
	}

	content, err := s.contentRepository.FindActiveByUserAndType(ctx, user.ID, contentType)
	if errors.Is(err, store.ErrContentNotFound) {
		return emptyContentByType(), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contentService.GetByType").Int64("user_id", user.ID).Msg("error loading content")
		return models.ContentByType{}, err
	}

	files, err := s.fileRepository.ListActiveByContent(ctx, content.ID)
	if err != nil {
		return models.ContentByType{}, err
	}

	view := contentView(content, locale)
	return models.ContentByType{
		Content: &view,
		Files:   filesData(files, locale, false),
		Stats:   sizeStats(files),
	}, nil
}

// GetAll returns every active content of the user by sort_order with its
// files and size rollups.
func (s *contentService) GetAll(ctx context.Context, user models.User, locale string) (models.AllContent, error) {
	contents, err := s.contentRepository.ListActiveByUser(ctx, user.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contentService.GetAll").Int64("user_id", user.ID).Msg("error listing content")
		return models.AllContent{}, err
	}

	ids := make([]int64, 0, len(contents))
	for _, c := range contents {
		ids = append(ids, c.ID)
	}

	files, err := s.fileRepository.ListActiveByContent(ctx, ids...)
	if err != nil {
		return models.AllContent{}, err
	}

	byContent := make(map[int64][]models.SpecialistFile, len(contents))
	for _, f := range files {
		byContent[f.ContentID] = append(byContent[f.ContentID], f)
	}

	result := models.AllContent{Contents: make([]models.ContentWithFiles, 0, len(contents))}
	for _, c := range contents {
		c.Files = byContent[c.ID]
		stats := sizeStats(c.Files)

		result.Contents = append(result.Contents, models.ContentWithFiles{
			ContentView:   contentView(c, locale),
			Files:         filesData(c.Files, locale, false),
			FilesCount:    stats.TotalFiles,
			TotalSize:     stats.TotalSize,
			FormattedSize: stats.FormattedSize,
		})

		result.Stats.TotalFiles += stats.TotalFiles
		result.Stats.TotalSize += stats.TotalSize
	}
	result.Stats.TotalContentPages = len(contents)
	result.Stats.FormattedSize = utils.FormatFileSize(result.Stats.TotalSize)

	return result, nil
}

func (s *contentService) Meta(locale string) models.ContentMeta {
	return models.ContentMeta{
		AvailableTypes:   models.AllContentTypes(),
		TypeTranslations: models.ContentTypeTranslations(),
		CurrentLocale:    locale,
	}
}

// Create provisions content for an existing specialist. A second content
// of the same type for the user yields ErrContentAlreadyExists.
func (s *contentService) Create(ctx context.Context, req models.ContentRequest) (models.SpecialistContent, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.SpecialistContent{}, err
	}

	owner, err := s.userRepository.FindUserByID(ctx, req.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.SpecialistContent{}, ErrSpecialistNotFound
	}
	if err != nil {
		return models.SpecialistContent{}, err
	}
	if !owner.IsSpecialist() {
		return models.SpecialistContent{}, validators.NewValidationError("user_id", "The selected user is not a specialist.")
	}

	content := models.SpecialistContent{
		UserID:      owner.ID,
		ContentType: req.ContentType,
		Title:       s.sanitizer.Text(req.Title),
		Description: s.sanitizer.Text(req.Description),
		Content:     s.sanitizer.HTML(req.Content),
		IsActive:    true,
	}
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		content.SortOrder = *req.SortOrder
	}

	created, err := s.contentRepository.Create(ctx, content)
	if errors.Is(err, store.ErrContentAlreadyExists) {
		return models.SpecialistContent{}, ErrContentAlreadyExists
	}
	if err != nil {
		log.Err(err).Str("func", "*contentService.Create").Int64("user_id", owner.ID).Msg("error creating content")
		return models.SpecialistContent{}, err
	}

	log.Info().Int64("content_id", created.ID).Int64("user_id", owner.ID).Str("content_type", string(created.ContentType)).Msg("specialist content created")
	return created, nil
}
