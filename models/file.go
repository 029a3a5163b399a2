package models

import (
	"path/filepath"
	"strings"
	"time"
)

// SpecialistFile is a downloadable file attached to a [SpecialistContent].
type SpecialistFile struct {
	ID        int64 `json:"id"`
	ContentID int64 `json:"specialist_content_id"`

	OriginalName string `json:"original_name"`
	// FileName is the generated name inside the storage.
	FileName string `json:"file_name"`
	// FilePath is the storage-relative path of the file.
	FilePath string `json:"file_path"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`

	DisplayName Translatable `json:"display_name"`
	Description Translatable `json:"description"`

	IsActive      bool  `json:"is_active"`
	SortOrder     int   `json:"sort_order"`
	DownloadCount int64 `json:"download_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ContentType and OwnerID come from the owning content row.
	ContentType ContentType `json:"-"`
	OwnerID     int64       `json:"-"`
}

// TableName returns the name of the database table
// associated with the SpecialistFile model.
func (f SpecialistFile) TableName() string {
	return "specialist_files"
}

// BelongsToUser reports whether the owning content belongs to userID.
func (f SpecialistFile) BelongsToUser(userID int64) bool {
	return f.OwnerID == userID
}

// Extension returns the extension of the original name without the dot.
func (f SpecialistFile) Extension() string {
	return strings.TrimPrefix(filepath.Ext(f.OriginalName), ".")
}

func (f SpecialistFile) IsImage() bool {
	return strings.HasPrefix(f.MimeType, "image/")
}

var documentMimeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"text/plain": {},
}

func (f SpecialistFile) IsDocument() bool {
	_, ok := documentMimeTypes[f.MimeType]
	return ok
}

// Icon names the UI icon for the file's MIME type.
func (f SpecialistFile) Icon() string {
	if f.IsImage() {
		return "image"
	}

	switch f.MimeType {
	case "application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain":
		return "file-text"
	case "application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "file-spreadsheet"
	case "application/zip", "application/x-rar-compressed":
		return "archive"
	}
	return "file"
}
