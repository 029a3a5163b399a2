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

// pageRepository is the SQL implementation of [PageRepository] over the
// "pages" table.
type pageRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewPageRepository(db *DB, logger *logger.Logger) PageRepository {
	logger.Debug().Msg("creating page repository")
	return &pageRepository{
		db:     db,
		logger: logger,
	}
}

// ListPublished returns published pages by sort_order.
func (r *pageRepository) ListPublished(ctx context.Context) ([]models.Page, error) {
	rows, err := r.db.query(ctx, r.db.builder.
		Select(pageColumns...).
		From(tablePages).
		Where(sq.Eq{"is_published": true}).
		OrderBy("sort_order", "id"))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pageRepository.ListPublished").Msg("error listing pages")
		return nil, err
	}
	return collect(rows, scanPage)
}

// FindHome returns the published home page.
func (r *pageRepository) FindHome(ctx context.Context) (models.Page, error) {
	return r.findOne(ctx, "*pageRepository.FindHome", sq.Eq{"is_home": true, "is_published": true})
}

func (r *pageRepository) FindPublishedBySlug(ctx context.Context, slug string) (models.Page, error) {
	return r.findOne(ctx, "*pageRepository.FindPublishedBySlug", sq.Eq{"slug": slug, "is_published": true})
}

func (r *pageRepository) FindByID(ctx context.Context, id int64) (models.Page, error) {
	return r.findOne(ctx, "*pageRepository.FindByID", sq.Eq{"id": id})
}

func (r *pageRepository) findOne(ctx context.Context, fn string, where sq.Eq) (models.Page, error) {
	row, err := r.db.queryRow(ctx, r.db.builder.Select(pageColumns...).From(tablePages).Where(where).Limit(1))
	if err != nil {
		return models.Page{}, err
	}

	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Page{}, ErrPageNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error scanning page")
		return models.Page{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return page, nil
}

// SlugExists reports whether another page than exceptID uses slug.
func (r *pageRepository) SlugExists(ctx context.Context, slug string, exceptID int64) (bool, error) {
	row, err := r.db.queryRow(ctx, r.db.builder.
		Select("COUNT(*)").
		From(tablePages).
		Where(sq.Eq{"slug": slug}).
		Where(sq.NotEq{"id": exceptID}))
	if err != nil {
		return false, err
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count > 0, nil
}

func (r *pageRepository) Create(ctx context.Context, page models.Page) (models.Page, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	row, err := r.db.queryRow(ctx, r.db.builder.
		Insert(tablePages).
		Columns("slug", "title", "content", "meta_title", "meta_description", "is_published", "is_home", "sort_order", "created_at", "updated_at").
		Values(page.Slug, page.Title, page.Content, page.MetaTitle, page.MetaDescription, page.IsPublished, page.IsHome, page.SortOrder, now, now).
		Suffix(returning(pageColumns)))
	if err != nil {
		return models.Page{}, err
	}

	created, err := scanPage(row)
	if err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.Page{}, ErrSlugAlreadyExists
		}
		log.Err(err).Str("func", "*pageRepository.Create").Msg("error creating page")
		return models.Page{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	return created, nil
}

func (r *pageRepository) Update(ctx context.Context, page models.Page) (models.Page, error) {
	log := logger.FromContext(ctx).With().Int64("page_id", page.ID).Logger()

	row, err := r.db.queryRow(ctx, r.db.builder.
		Update(tablePages).
		Set("slug", page.Slug).
		Set("title", page.Title).
		Set("content", page.Content).
		Set("meta_title", page.MetaTitle).
		Set("meta_description", page.MetaDescription).
		Set("is_published", page.IsPublished).
		Set("is_home", page.IsHome).
		Set("sort_order", page.SortOrder).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": page.ID}).
		Suffix(returning(pageColumns)))
	if err != nil {
		return models.Page{}, err
	}

	updated, err := scanPage(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Page{}, ErrPageNotFound
	case err != nil && r.db.errorClassificator.IsUniqueViolation(err):
		return models.Page{}, ErrSlugAlreadyExists
	case err != nil:
		log.Err(err).Str("func", "*pageRepository.Update").Msg("error updating page")
		return models.Page{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	return updated, nil
}

func (r *pageRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.exec(ctx, r.db.builder.Delete(tablePages).Where(sq.Eq{"id": id}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pageRepository.Delete").Int64("page_id", id).Msg("error deleting page")
		return err
	}
	if affected == 0 {
		return ErrPageNotFound
	}
	return nil
}

func (r *pageRepository) ClearHome(ctx context.Context, exceptID int64) error {
	_, err := r.db.exec(ctx, r.db.builder.
		Update(tablePages).
		Set("is_home", false).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"is_home": true}).
		Where(sq.NotEq{"id": exceptID}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pageRepository.ClearHome").Msg("error clearing home page flag")
	}
	return err
}
