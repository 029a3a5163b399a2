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

// contentRepository is the SQL implementation of [ContentRepository] over
// the "specialist_contents" table.
type contentRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewContentRepository(db *DB, logger *logger.Logger) ContentRepository {
	logger.Debug().Msg("creating specialist content repository")
	return &contentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *contentRepository) FindActiveByUserAndType(ctx context.Context, userID int64, contentType models.ContentType) (models.SpecialistContent, error) {
	return r.findOne(ctx, "*contentRepository.FindActiveByUserAndType", sq.Eq{
		"user_id":      userID,
		"content_type": string(contentType),
		"is_active":    true,
	})
}

func (r *contentRepository) FindByID(ctx context.Context, id int64) (models.SpecialistContent, error) {
	return r.findOne(ctx, "*contentRepository.FindByID", sq.Eq{"id": id})
}

func (r *contentRepository) findOne(ctx context.Context, fn string, where sq.Eq) (models.SpecialistContent, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db.builder.Select(contentColumns...).From(tableSpecialistContents).Where(where))
	if err != nil {
		return models.SpecialistContent{}, err
	}

	content, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SpecialistContent{}, ErrContentNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error scanning specialist content")
		return models.SpecialistContent{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return content, nil
}

// ListActiveByUser returns active content ordered by sort_order.
func (r *contentRepository) ListActiveByUser(ctx context.Context, userID int64) ([]models.SpecialistContent, error) {
	return r.list(ctx, "*contentRepository.ListActiveByUser", r.db.builder.
		Select(contentColumns...).
		From(tableSpecialistContents).
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		OrderBy("sort_order", "id"))
}

// ListRecentByUser returns the most recently updated content of the user.
func (r *contentRepository) ListRecentByUser(ctx context.Context, userID int64, limit int) ([]models.SpecialistContent, error) {
	query := r.db.builder.
		Select(contentColumns...).
		From(tableSpecialistContents).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	return r.list(ctx, "*contentRepository.ListRecentByUser", query)
}

func (r *contentRepository) list(ctx context.Context, fn string, q sq.SelectBuilder) ([]models.SpecialistContent, error) {
	rows, err := r.db.query(ctx, q)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error listing specialist content")
		return nil, err
	}
	return collect(rows, scanContent)
}

// CountByUser counts the active content of the user.
func (r *contentRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	row, err := r.db.queryRow(ctx, r.db.builder.
		Select("COUNT(*)").
		From(tableSpecialistContents).
		Where(sq.Eq{"user_id": userID, "is_active": true}))
	if err != nil {
		return 0, err
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contentRepository.CountByUser").Msg("error counting specialist content")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// Create inserts content. A second record of the same type for the user
// yields [ErrContentAlreadyExists].
func (r *contentRepository) Create(ctx context.Context, content models.SpecialistContent) (models.SpecialistContent, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", content.UserID).Logger()

	if content.SortOrder == 0 {
		next, err := r.db.nextSortOrder(ctx, tableSpecialistContents, sq.Eq{"user_id": content.UserID})
		if err != nil {
			log.Err(err).Str("func", "*contentRepository.Create").Msg("error computing sort order")
			return models.SpecialistContent{}, err
		}
		content.SortOrder = next
	}

	now := time.Now().UTC()
	row, err := r.db.queryRow(ctx, r.db.builder.
		Insert(tableSpecialistContents).
		Columns("user_id", "content_type", "title", "description", "content", "is_active", "sort_order", "created_at", "updated_at").
		Values(content.UserID, string(content.ContentType), content.Title, content.Description, content.Content,
			content.IsActive, content.SortOrder, now, now).
		Suffix(returning(contentColumns)))
	if err != nil {
		return models.SpecialistContent{}, err
	}

	created, err := scanContent(row)
	if err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.SpecialistContent{}, ErrContentAlreadyExists
		}
		log.Err(err).Str("func", "*contentRepository.Create").Msg("error creating specialist content")
		return models.SpecialistContent{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}
