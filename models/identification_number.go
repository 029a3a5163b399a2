package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxBatchSpan bounds a single batch creation: end - start may not exceed it.
const MaxBatchSpan = 100

// IdentificationNumber is a pre-issued code that allows exactly one
// specialist to register. A code is registrable only while it is active
// and unused.
type IdentificationNumber struct {
	ID          int64   `json:"id"`
	Number      string  `json:"number"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
	IsUsed      bool    `json:"is_used"`

	// UsedBy and UsedAt are set together with IsUsed and cleared on release.
	UsedBy *int64     `json:"used_by"`
	UsedAt *time.Time `json:"used_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// User is the account bound to a used code, when loaded.
	User *UserSummary `json:"user,omitempty"`
}

// TableName returns the name of the database table
// associated with the IdentificationNumber model.
func (n IdentificationNumber) TableName() string {
	return "identification_numbers"
}

// IsAvailable reports whether the code can be used for registration.
func (n IdentificationNumber) IsAvailable() bool {
	return n.IsActive && !n.IsUsed
}

// DescriptionText returns the description or an empty string.
func (n IdentificationNumber) DescriptionText() string {
	if n.Description == nil {
		return ""
	}
	return *n.Description
}

// NormalizeNumber trims and uppercases a code.
func NormalizeNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// BatchNumber builds the i-th code of a batch: prefix followed by i padded
// to three digits (SPEC001, SPEC002, ...).
func BatchNumber(prefix string, i int) string {
	return fmt.Sprintf("%s%03d", prefix, i)
}

// Department returns the reporting group of a code: its first four
// characters. It is a display convenience only.
func Department(number string) string {
	if utf8.RuneCountInString(number) <= 4 {
		return number
	}
	return string([]rune(number)[:4])
}

// IdentificationNumberStatus filters admin listings.
type IdentificationNumberStatus string

const (
	StatusAvailable IdentificationNumberStatus = "available"
	StatusUsed      IdentificationNumberStatus = "used"
	StatusInactive  IdentificationNumberStatus = "inactive"
)

// IdentificationNumberFilter describes an admin listing query.
type IdentificationNumberFilter struct {
	Status    IdentificationNumberStatus
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// Offset returns the row offset for the requested page.
func (f IdentificationNumberFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PerPage
}

// Pagination is returned next to paged listings.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewPagination computes the last page for total rows split by perPage.
func NewPagination(page, perPage int, total int64) Pagination {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}
	if page < 1 {
		page = 1
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}

// IdentificationNumberStats are registry-wide counters.
type IdentificationNumberStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Available int64 `json:"available"`
	Used      int64 `json:"used"`
}

// DepartmentStats are counters for one department group.
type DepartmentStats struct {
	Department string `json:"department"`
	Total      int64  `json:"total"`
	Used       int64  `json:"used"`
	Available  int64  `json:"available"`
}

// IdentificationNumberReport is the payload of the stats endpoint.
type IdentificationNumberReport struct {
	Overall      IdentificationNumberStats `json:"overall"`
	ByDepartment []DepartmentStats         `json:"by_department"`
}

// IdentificationNumberPage is one page of an admin listing.
type IdentificationNumberPage struct {
	Items      []IdentificationNumber
	Pagination Pagination
	Stats      IdentificationNumberStats
}

// IdentificationNumberCheck is returned by the public availability check.
type IdentificationNumberCheck struct {
	CanRegister bool   `json:"can_register"`
	Description string `json:"description"`
}

// BatchResult is returned by batch creation.
type BatchResult struct {
	CreatedCount int `json:"created_count"`
}
