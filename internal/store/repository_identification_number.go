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

type identificationNumberRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewIdentificationNumberRepository constructs the SQL implementation of
// [IdentificationNumberRepository].
func NewIdentificationNumberRepository(db *DB, logger *logger.Logger) IdentificationNumberRepository {
	logger.Debug().Msg("creating identification number repository")
	return &identificationNumberRepository{
		db:     db,
		logger: logger,
	}
}

// List returns one page of codes matching filter and the total number of
// matching codes.
func (r *identificationNumberRepository) List(ctx context.Context, filter models.IdentificationNumberFilter) ([]models.IdentificationNumber, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := r.db.buildCountIdentificationNumbersQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.List").Msg("error building count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := r.db.executor(ctx).QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.List").Msg("error counting identification numbers")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := r.db.buildListIdentificationNumbersQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.List").Msg("error building list query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.List").Msg("error listing identification numbers")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	items, err := collect(rows, scanIdentificationNumber)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.List").Msg("error scanning identification numbers")
		return nil, 0, err
	}

	return items, total, nil
}

func (r *identificationNumberRepository) Stats(ctx context.Context) (models.IdentificationNumberStats, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildIdentificationNumberStatsQuery()
	if err != nil {
		return models.IdentificationNumberStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stats models.IdentificationNumberStats
	err = r.db.executor(ctx).QueryRowContext(ctx, query, args...).
		Scan(&stats.Total, &stats.Active, &stats.Available, &stats.Used)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.Stats").Msg("error computing stats")
		return models.IdentificationNumberStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}

// DepartmentStats groups codes by their first four characters.
func (r *identificationNumberRepository) DepartmentStats(ctx context.Context) ([]models.DepartmentStats, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildDepartmentStatsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.DepartmentStats").Msg("error computing department stats")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return collect(rows, func(row rowScanner) (models.DepartmentStats, error) {
		var d models.DepartmentStats
		err := row.Scan(&d.Department, &d.Total, &d.Used, &d.Available)
		return d, err
	})
}

func (r *identificationNumberRepository) FindByID(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	return r.findOne(ctx, "*identificationNumberRepository.FindByID", sq.Eq{"n.id": id})
}

// FindByNumber looks the code up in its normalized (uppercased) form.
func (r *identificationNumberRepository) FindByNumber(ctx context.Context, number string) (models.IdentificationNumber, error) {
	return r.findOne(ctx, "*identificationNumberRepository.FindByNumber", sq.Eq{"n.number": models.NormalizeNumber(number)})
}

func (r *identificationNumberRepository) findOne(ctx context.Context, fn string, where sq.Eq) (models.IdentificationNumber, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db.selectIdentificationNumbers().Where(where))
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return models.IdentificationNumber{}, err
	}

	number, err := scanIdentificationNumber(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.IdentificationNumber{}, ErrIdentificationNumberNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error scanning identification number")
		return models.IdentificationNumber{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return number, nil
}

// Create inserts an unused code. A duplicate number yields
// [ErrIdentificationNumberExists].
func (r *identificationNumberRepository) Create(ctx context.Context, number models.IdentificationNumber) (models.IdentificationNumber, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	row, err := r.db.queryRow(ctx, r.db.builder.
		Insert(tableIdentificationNumbers).
		Columns("number", "description", "is_active", "is_used", "created_at", "updated_at").
		Values(models.NormalizeNumber(number.Number), number.Description, number.IsActive, false, now, now).
		Suffix("RETURNING id"))
	if err != nil {
		return models.IdentificationNumber{}, err
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.IdentificationNumber{}, ErrIdentificationNumberExists
		}
		log.Err(err).Str("func", "*identificationNumberRepository.Create").Msg("error creating identification number")
		return models.IdentificationNumber{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return r.FindByID(ctx, id)
}

// Update overwrites number, description and is_active.
func (r *identificationNumberRepository) Update(ctx context.Context, number models.IdentificationNumber) (models.IdentificationNumber, error) {
	log := logger.FromContext(ctx).With().Int64("identification_number_id", number.ID).Logger()

	affected, err := r.db.exec(ctx, r.db.builder.
		Update(tableIdentificationNumbers).
		Set("number", models.NormalizeNumber(number.Number)).
		Set("description", number.Description).
		Set("is_active", number.IsActive).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": number.ID}))
	if err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.IdentificationNumber{}, ErrIdentificationNumberExists
		}
		log.Err(err).Str("func", "*identificationNumberRepository.Update").Msg("error updating identification number")
		return models.IdentificationNumber{}, err
	}
	if affected == 0 {
		return models.IdentificationNumber{}, ErrIdentificationNumberNotFound
	}

	return r.FindByID(ctx, number.ID)
}

// Delete removes an unused code. A used code yields
// [ErrIdentificationNumberInUse].
func (r *identificationNumberRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).With().Int64("identification_number_id", id).Logger()

	affected, err := r.db.exec(ctx, r.db.builder.
		Delete(tableIdentificationNumbers).
		Where(sq.Eq{"id": id, "is_used": false}))
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.Delete").Msg("error deleting identification number")
		return err
	}
	if affected > 0 {
		return nil
	}

	// nothing deleted: tell a used code from a missing one
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return ErrIdentificationNumberInUse
}

func (r *identificationNumberRepository) CreateBatch(ctx context.Context, numbers []string, description *string) (int, error) {
	log := logger.FromContext(ctx)

	if len(numbers) == 0 {
		return 0, nil
	}

	normalized := make([]string, len(numbers))
	for i, n := range numbers {
		normalized[i] = models.NormalizeNumber(n)
	}

	query, args, err := r.db.buildCreateBatchQuery(normalized, description, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	affected, err := r.db.execRaw(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.CreateBatch").Int("count", len(numbers)).Msg("error creating batch")
		return 0, err
	}

	return int(affected), nil
}

func (r *identificationNumberRepository) MarkAsUsed(ctx context.Context, number string, userID int64, at time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildMarkAsUsedQuery(models.NormalizeNumber(number), userID, at.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.db.execRaw(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberRepository.MarkAsUsed").Int64("user_id", userID).Msg("error marking identification number as used")
		return err
	}
	if affected == 0 {
		return ErrIdentificationNumberUnavailable
	}

	return nil
}

// Release clears the binding of a code to its user.
func (r *identificationNumberRepository) Release(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	return r.updateState(ctx, "*identificationNumberRepository.Release", id, map[string]any{
		"is_used":    false,
		"used_by":    nil,
		"used_at":    nil,
		"updated_at": time.Now().UTC(),
	})
}

func (r *identificationNumberRepository) ToggleStatus(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	return r.updateState(ctx, "*identificationNumberRepository.ToggleStatus", id, map[string]any{
		"is_active":  sq.Expr("NOT is_active"),
		"updated_at": time.Now().UTC(),
	})
}

func (r *identificationNumberRepository) updateState(ctx context.Context, fn string, id int64, values map[string]any) (models.IdentificationNumber, error) {
	log := logger.FromContext(ctx)

	affected, err := r.db.exec(ctx, r.db.builder.
		Update(tableIdentificationNumbers).
		SetMap(values).
		Where(sq.Eq{"id": id}))
	if err != nil {
		log.Err(err).Str("func", fn).Int64("identification_number_id", id).Msg("error updating identification number")
		return models.IdentificationNumber{}, err
	}
	if affected == 0 {
		return models.IdentificationNumber{}, ErrIdentificationNumberNotFound
	}

	return r.FindByID(ctx, id)
}
