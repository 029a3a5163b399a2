package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is wrapped by every "record not found" error below.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is wrapped by every unique-constraint error below.
	ErrAlreadyExists = errors.New("record already exists")

	ErrUserNotFound       = wrapSentinel(ErrNotFound, "user not found")
	ErrEmailAlreadyExists = wrapSentinel(ErrAlreadyExists, "email already exists")

	ErrIdentificationNumberNotFound = wrapSentinel(ErrNotFound, "identification number not found")
	ErrIdentificationNumberExists   = wrapSentinel(ErrAlreadyExists, "identification number already exists")

	// ErrIdentificationNumberUnavailable is returned when the conditional
	// update of MarkAsUsed matched no row: the code was used or deactivated
	// concurrently.
	ErrIdentificationNumberUnavailable = errors.New("identification number is not available")

	// ErrIdentificationNumberInUse is returned when deleting a used code.
	ErrIdentificationNumberInUse = errors.New("identification number is in use")

	ErrContentNotFound      = wrapSentinel(ErrNotFound, "specialist content not found")
	ErrContentAlreadyExists = wrapSentinel(ErrAlreadyExists, "specialist content of this type already exists")

	ErrFileNotFound = wrapSentinel(ErrNotFound, "specialist file not found")

	ErrPageNotFound         = wrapSentinel(ErrNotFound, "page not found")
	ErrSlugAlreadyExists    = wrapSentinel(ErrAlreadyExists, "page slug already exists")
	ErrStoredFileNotFound   = wrapSentinel(ErrNotFound, "stored file not found")
	ErrInvalidStoredPath    = errors.New("invalid stored file path")
	ErrUnsupportedDatabase  = errors.New("unsupported database DSN")
	ErrRevocationStoreError = errors.New("token revocation store error")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

type sentinel struct {
	parent error
	msg    string
}

func (e *sentinel) Error() string { return e.msg }
func (e *sentinel) Unwrap() error { return e.parent }

// wrapSentinel creates a distinct sentinel that also matches parent.
func wrapSentinel(parent error, msg string) error {
	return &sentinel{parent: parent, msg: msg}
}
