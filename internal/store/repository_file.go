package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating specialist file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *fileRepository) ListActiveByContent(ctx context.Context, contentIDs ...int64) ([]models.SpecialistFile, error) {
	if len(contentIDs) == 0 {
		return []models.SpecialistFile{}, nil
	}

	return r.list(ctx, "*fileRepository.ListActiveByContent", r.db.selectFiles().
		Where(sq.Eq{"f.specialist_content_id": contentIDs, "f.is_active": true}).
		OrderBy("f.specialist_content_id", "f.sort_order", "f.id"))
}

func (r *fileRepository) ListActiveByUser(ctx context.Context, userID int64) ([]models.SpecialistFile, error) {
	return r.list(ctx, "*fileRepository.ListActiveByUser", r.db.selectFiles().
		Where(sq.Eq{"c.user_id": userID, "c.is_active": true, "f.is_active": true}).
		OrderBy("c.sort_order", "f.sort_order", "f.id"))
}

func (r *fileRepository) list(ctx context.Context, fn string, q sq.SelectBuilder) ([]models.SpecialistFile, error) {
	rows, err := r.db.query(ctx, q)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error listing specialist files")
		return nil, err
	}
	return collect(rows, scanFile)
}

// CountByUser counts active files of the user's active content.
func (r *fileRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	row, err := r.db.queryRow(ctx, r.db.builder.
		Select("COUNT(*)").
		From(tableSpecialistFiles+" f").
		Join(tableSpecialistContents+" c ON c.id = f.specialist_content_id").
		Where(sq.Eq{"c.user_id": userID, "c.is_active": true, "f.is_active": true}))
	if err != nil {
		return 0, err
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileRepository.CountByUser").Msg("error counting specialist files")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (r *fileRepository) FindByID(ctx context.Context, id int64) (models.SpecialistFile, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db.selectFiles().Where(sq.Eq{"f.id": id}))
	if err != nil {
		return models.SpecialistFile{}, err
	}

	file, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SpecialistFile{}, ErrFileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.FindByID").Int64("file_id", id).Msg("error scanning specialist file")
		return models.SpecialistFile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return file, nil
}

// IncrementDownloadCount adds exactly one download to the file.
func (r *fileRepository) IncrementDownloadCount(ctx context.Context, id int64) error {
	affected, err := r.db.exec(ctx, r.db.builder.
		Update(tableSpecialistFiles).
		Set("download_count", sq.Expr("download_count + 1")).
		Where(sq.Eq{"id": id}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileRepository.IncrementDownloadCount").Int64("file_id", id).Msg("error incrementing download count")
		return err
	}
	if affected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *fileRepository) Create(ctx context.Context, file models.SpecialistFile) (models.SpecialistFile, error) {
	log := logger.FromContext(ctx).With().Int64("content_id", file.ContentID).Logger()

	if file.SortOrder == 0 {
		next, err := r.db.nextSortOrder(ctx, tableSpecialistFiles, sq.Eq{"specialist_content_id": file.ContentID})
		if err != nil {
			log.Err(err).Str("func", "*fileRepository.Create").Msg("error computing sort order")
			return models.SpecialistFile{}, err
		}
		file.SortOrder = next
	}

	now := time.Now().UTC()
	row, err := r.db.queryRow(ctx, r.db.builder.
		Insert(tableSpecialistFiles).
		Columns("specialist_content_id", "original_name", "file_name", "file_path", "mime_type", "file_size",
			"display_name", "description", "is_active", "sort_order", "download_count", "created_at", "updated_at").
		Values(file.ContentID, file.OriginalName, file.FileName, file.FilePath, file.MimeType, file.FileSize,
			file.DisplayName, file.Description, file.IsActive, file.SortOrder, 0, now, now).
		Suffix("RETURNING id"))
	if err != nil {
		return models.SpecialistFile{}, err
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		log.Err(err).Str("func", "*fileRepository.Create").Msg("error creating specialist file")
		return models.SpecialistFile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *fileRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.exec(ctx, r.db.builder.Delete(tableSpecialistFiles).Where(sq.Eq{"id": id}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileRepository.Delete").Int64("file_id", id).Msg("error deleting specialist file")
		return err
	}
	if affected == 0 {
		return ErrFileNotFound
	}
	return nil
}
