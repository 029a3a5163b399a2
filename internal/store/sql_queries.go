package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/med-cms/models"
)

const (
	tableUsers                 = "users"
	tableIdentificationNumbers = "identification_numbers"
	tableSpecialistContents    = "specialist_contents"
	tableSpecialistFiles       = "specialist_files"
	tablePages                 = "pages"
	tableRevokedTokens         = "revoked_tokens"
)

var (
	userColumns = []string{
		"id", "first_name", "last_name", "email", "password", "role", "is_active",
		"hospital_name", "last_login_at", "created_at", "updated_at",
	}

	identificationNumberColumns = []string{
		"n.id", "n.number", "n.description", "n.is_active", "n.is_used", "n.used_by", "n.used_at",
		"n.created_at", "n.updated_at",
		"u.id", "u.first_name", "u.last_name", "u.email", "u.hospital_name", "u.role", "u.is_active",
	}

	contentColumns = []string{
		"id", "user_id", "content_type", "title", "description", "content", "is_active", "sort_order",
		"created_at", "updated_at",
	}

	fileColumns = []string{
		"f.id", "f.specialist_content_id", "f.original_name", "f.file_name", "f.file_path", "f.mime_type",
		"f.file_size", "f.display_name", "f.description", "f.is_active", "f.sort_order", "f.download_count",
		"f.created_at", "f.updated_at", "c.content_type", "c.user_id",
	}

	pageColumns = []string{
		"id", "slug", "title", "content", "meta_title", "meta_description", "is_published", "is_home",
		"sort_order", "created_at", "updated_at",
	}

	// identificationNumberSortColumns whitelists the admin list sort keys.
	identificationNumberSortColumns = map[string]string{
		"number":      "n.number",
		"description": "n.description",
		"is_active":   "n.is_active",
		"is_used":     "n.is_used",
		"used_at":     "n.used_at",
		"created_at":  "n.created_at",
	}
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u    models.User
		role string
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &role, &u.IsActive,
		&u.HospitalName, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	u.Role = models.Role(role)
	return u, err
}

func scanIdentificationNumber(row rowScanner) (models.IdentificationNumber, error) {
	var (
		n        models.IdentificationNumber
		userID   sql.NullInt64
		first    sql.NullString
		last     sql.NullString
		email    sql.NullString
		hospital sql.NullString
		role     sql.NullString
		active   sql.NullBool
	)
	err := row.Scan(&n.ID, &n.Number, &n.Description, &n.IsActive, &n.IsUsed, &n.UsedBy, &n.UsedAt,
		&n.CreatedAt, &n.UpdatedAt,
		&userID, &first, &last, &email, &hospital, &role, &active)
	if err != nil {
		return n, err
	}

	if userID.Valid {
		summary := models.User{
			ID:           userID.Int64,
			FirstName:    first.String,
			LastName:     last.String,
			Email:        email.String,
			HospitalName: hospital.String,
			Role:         models.Role(role.String),
			IsActive:     active.Bool,
		}.Summary()
		n.User = &summary
	}
	return n, nil
}

func scanContent(row rowScanner) (models.SpecialistContent, error) {
	var (
		c           models.SpecialistContent
		contentType string
	)
	err := row.Scan(&c.ID, &c.UserID, &contentType, &c.Title, &c.Description, &c.Content, &c.IsActive,
		&c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	c.ContentType = models.ContentType(contentType)
	return c, err
}

func scanFile(row rowScanner) (models.SpecialistFile, error) {
	var (
		f           models.SpecialistFile
		contentType string
	)
	err := row.Scan(&f.ID, &f.ContentID, &f.OriginalName, &f.FileName, &f.FilePath, &f.MimeType,
		&f.FileSize, &f.DisplayName, &f.Description, &f.IsActive, &f.SortOrder, &f.DownloadCount,
		&f.CreatedAt, &f.UpdatedAt, &contentType, &f.OwnerID)
	f.ContentType = models.ContentType(contentType)
	return f, err
}

func scanPage(row rowScanner) (models.Page, error) {
	var p models.Page
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.MetaTitle, &p.MetaDescription,
		&p.IsPublished, &p.IsHome, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// returning renders a RETURNING clause for columns.
func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// selectIdentificationNumbers selects codes joined with their bound user.
func (db *DB) selectIdentificationNumbers() sq.SelectBuilder {
	return db.builder.
		Select(identificationNumberColumns...).
		From(tableIdentificationNumbers + " n").
		LeftJoin(tableUsers + " u ON u.id = n.used_by")
}

// selectFiles selects files joined with their owning content.
func (db *DB) selectFiles() sq.SelectBuilder {
	return db.builder.
		Select(fileColumns...).
		From(tableSpecialistFiles + " f").
		Join(tableSpecialistContents + " c ON c.id = f.specialist_content_id")
}

// identificationNumberFilter converts a list filter into a WHERE condition.
func (db *DB) identificationNumberFilter(filter models.IdentificationNumberFilter) sq.And {
	where := sq.And{}

	switch filter.Status {
	case models.StatusAvailable:
		where = append(where, sq.Eq{"n.is_active": true, "n.is_used": false})
	case models.StatusUsed:
		where = append(where, sq.Eq{"n.is_used": true})
	case models.StatusInactive:
		where = append(where, sq.Eq{"n.is_active": false})
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		like := db.likeOperator()
		where = append(where, sq.Or{
			sq.Expr("n.number "+like+" ? ESCAPE '\\'", pattern),
			sq.Expr("n.description "+like+" ? ESCAPE '\\'", pattern),
		})
	}

	return where
}

// buildListIdentificationNumbersQuery builds one page of the admin listing.
// Unknown sort keys fall back to the number.
func (db *DB) buildListIdentificationNumbersQuery(filter models.IdentificationNumberFilter) (string, []any, error) {
	column, ok := identificationNumberSortColumns[filter.SortBy]
	if !ok {
		column = identificationNumberSortColumns["number"]
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	query := db.selectIdentificationNumbers().
		Where(db.identificationNumberFilter(filter)).
		OrderBy(column+" "+direction, "n.id "+direction)

	if filter.PerPage > 0 {
		query = query.Limit(uint64(filter.PerPage)).Offset(uint64(filter.Offset()))
	}

	return query.ToSql()
}

func (db *DB) buildCountIdentificationNumbersQuery(filter models.IdentificationNumberFilter) (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(tableIdentificationNumbers + " n").
		Where(db.identificationNumberFilter(filter)).
		ToSql()
}

func (db *DB) buildIdentificationNumberStatsQuery() (string, []any, error) {
	return db.builder.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN is_active AND NOT is_used THEN 1 ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN is_used THEN 1 ELSE 0 END), 0)",
		).
		From(tableIdentificationNumbers).
		ToSql()
}

func (db *DB) buildDepartmentStatsQuery() (string, []any, error) {
	return db.builder.
		Select(
			"SUBSTR(number, 1, 4) AS department",
			"COUNT(*)",
			"COALESCE(SUM(CASE WHEN is_used THEN 1 ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN is_active AND NOT is_used THEN 1 ELSE 0 END), 0)",
		).
		From(tableIdentificationNumbers).
		GroupBy("SUBSTR(number, 1, 4)").
		OrderBy("department").
		ToSql()
}

// buildCreateBatchQuery inserts every number, skipping the ones that exist.
func (db *DB) buildCreateBatchQuery(numbers []string, description *string, now any) (string, []any, error) {
	if len(numbers) == 0 {
		return "", nil, fmt.Errorf("%w: empty batch", ErrBuildingSQLQuery)
	}

	query := db.builder.
		Insert(tableIdentificationNumbers).
		Columns("number", "description", "is_active", "is_used", "created_at", "updated_at")
	for _, number := range numbers {
		query = query.Values(number, description, true, false, now, now)
	}

	return query.Suffix("ON CONFLICT (number) DO NOTHING").ToSql()
}

// buildMarkAsUsedQuery is the conditional update that consumes a code. It
// matches only an active unused row, so a concurrent registration sees zero
// affected rows.
func (db *DB) buildMarkAsUsedQuery(number string, userID int64, at any) (string, []any, error) {
	return db.builder.
		Update(tableIdentificationNumbers).
		Set("is_used", true).
		Set("used_by", userID).
		Set("used_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"number": number, "is_used": false, "is_active": true}).
		ToSql()
}

// nextSortOrder returns max(sort_order)+1 within the rows matching where.
func (db *DB) nextSortOrder(ctx context.Context, table string, where sq.Eq) (int, error) {
	query, args, err := db.builder.
		Select("COALESCE(MAX(sort_order), 0) + 1").
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var next int
	if err := db.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return next, nil
}

// queryRow builds q and runs it on the executor of ctx.
func (db *DB) queryRow(ctx context.Context, q sq.Sqlizer) (*sql.Row, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return db.executor(ctx).QueryRowContext(ctx, query, args...), nil
}

func (db *DB) query(ctx context.Context, q sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	rows, err := db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return rows, nil
}

// exec builds q, runs it and returns the number of affected rows.
func (db *DB) exec(ctx context.Context, q sq.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return db.execRaw(ctx, query, args...)
}

func (db *DB) execRaw(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return affected, nil
}

// collect scans every row with scan.
func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return items, nil
}
