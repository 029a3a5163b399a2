// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/models"
)

func Test_buildListIdentificationNumbersQuery_Postgres(t *testing.T) {
	db := newDB(nil, DialectPostgres, NewPostgresErrorClassifier(), logger.Nop())

	query, args, err := db.buildListIdentificationNumbersQuery(models.IdentificationNumberFilter{
		Status:    models.StatusAvailable,
		Search:    "card",
		SortBy:    "used_at",
		SortOrder: "DESC",
		Page:      3,
		PerPage:   15,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM identification_numbers n LEFT JOIN users u ON u.id = n.used_by")
	assert.Contains(t, query, "n.is_active = $1 AND n.is_used = $2")
	assert.Contains(t, query, "n.number ILIKE $3 ESCAPE '\\'")
	assert.Contains(t, query, "n.description ILIKE $4 ESCAPE '\\'")
	assert.Contains(t, query, "ORDER BY n.used_at DESC, n.id DESC")
	assert.Contains(t, query, "LIMIT 15 OFFSET 30")
	assert.Equal(t, []any{true, false, "%card%", "%card%"}, args)
}

func Test_buildListIdentificationNumbersQuery_SQLiteDefaults(t *testing.T) {
	db := newDB(nil, DialectSQLite, NewSQLiteErrorClassifier(), logger.Nop())

	query, args, err := db.buildListIdentificationNumbersQuery(models.IdentificationNumberFilter{Search: "50%"})
	require.NoError(t, err)

	assert.Contains(t, query, "n.number LIKE ? ESCAPE")
	assert.NotContains(t, query, "$1")
	assert.Contains(t, query, "ORDER BY n.number ASC, n.id ASC")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []any{`%50\%%`, `%50\%%`}, args)
}

func Test_buildCreateBatchQuery(t *testing.T) {
	db := newDB(nil, DialectPostgres, NewPostgresErrorClassifier(), logger.Nop())
	now := time.Now()

	query, args, err := db.buildCreateBatchQuery([]string{"SPEC001", "SPEC002"}, nil, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO identification_numbers (number,description,is_active,is_used,created_at,updated_at) VALUES"))
	assert.Contains(t, query, "($7,$8,$9,$10,$11,$12)")
	assert.True(t, strings.HasSuffix(query, "ON CONFLICT (number) DO NOTHING"))
	assert.Len(t, args, 12)
	assert.Equal(t, "SPEC002", args[6])

	_, _, err = db.buildCreateBatchQuery(nil, nil, now)
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}

func Test_buildStatsQueries(t *testing.T) {
	db := newDB(nil, DialectPostgres, NewPostgresErrorClassifier(), logger.Nop())

	query, args, err := db.buildIdentificationNumberStatsQuery()
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, query, "COUNT(*)")
	assert.Contains(t, query, "FROM identification_numbers")

	query, _, err = db.buildDepartmentStatsQuery()
	require.NoError(t, err)
	assert.Contains(t, query, "GROUP BY SUBSTR(number, 1, 4)")
	assert.Contains(t, query, "ORDER BY department")
}
