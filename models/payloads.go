package models

import (
	"io"
	"time"
)

// FileData is a file resolved to one locale, as returned to specialists.
type FileData struct {
	ID            int64       `json:"id"`
	DisplayName   string      `json:"display_name"`
	Description   string      `json:"description"`
	OriginalName  string      `json:"original_name"`
	FileSize      int64       `json:"file_size"`
	FormattedSize string      `json:"formatted_size"`
	MimeType      string      `json:"mime_type"`
	Extension     string      `json:"extension"`
	FileIcon      string      `json:"file_icon"`
	DownloadCount int64       `json:"download_count"`
	DownloadURL   string      `json:"download_url"`
	ContentType   ContentType `json:"content_type,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// FileInfo is the detailed view of a single file.
type FileInfo struct {
	FileData
	IsActive  bool            `json:"is_active"`
	UpdatedAt time.Time       `json:"updated_at"`
	Content   FileContentInfo `json:"content"`
}

// FileContentInfo names the content a file belongs to.
type FileContentInfo struct {
	Type     ContentType `json:"type"`
	TypeName string      `json:"type_name"`
}

// ContentView is a content page resolved to one locale.
type ContentView struct {
	ID          int64       `json:"id"`
	Type        ContentType `json:"type"`
	TypeName    string      `json:"type_name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Content     string      `json:"content"`
	IsActive    bool        `json:"is_active"`
	SortOrder   int         `json:"sort_order"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// SizeStats are file counters of a content page or of a specialist.
type SizeStats struct {
	TotalFiles    int    `json:"total_files"`
	TotalSize     int64  `json:"total_size"`
	FormattedSize string `json:"formatted_size"`
}

// ContentByType is the payload for one content type. Content is nil when
// the specialist has no content of that type yet.
type ContentByType struct {
	Content *ContentView `json:"content"`
	Files   []FileData   `json:"files"`
	Message string       `json:"message,omitempty"`
	Stats   SizeStats    `json:"stats"`
}

// ContentWithFiles is one entry of the all-content payload.
type ContentWithFiles struct {
	ContentView
	Files         []FileData `json:"files"`
	FilesCount    int        `json:"files_count"`
	TotalSize     int64      `json:"total_size"`
	FormattedSize string     `json:"formatted_size"`
}

// AllContentStats are totals over every content page of a specialist.
type AllContentStats struct {
	TotalContentPages int    `json:"total_content_pages"`
	TotalFiles        int    `json:"total_files"`
	TotalSize         int64  `json:"total_size"`
	FormattedSize     string `json:"formatted_size"`
}

// AllContent is the payload of the content index.
type AllContent struct {
	Contents []ContentWithFiles `json:"contents"`
	Stats    AllContentStats    `json:"stats"`
}

// ContentMeta describes the available content types for clients.
type ContentMeta struct {
	AvailableTypes   []ContentType                `json:"available_types"`
	TypeTranslations map[ContentType]Translatable `json:"type_translations"`
	CurrentLocale    string                       `json:"current_locale"`
}

// FilesOfType groups files of one content type.
type FilesOfType struct {
	TypeName string     `json:"type_name"`
	Files    []FileData `json:"files"`
	Count    int        `json:"count"`
	Size     int64      `json:"size"`
}

// AllFilesStats are totals over all files of a specialist.
type AllFilesStats struct {
	TotalFiles    int    `json:"total_files"`
	TotalSize     int64  `json:"total_size"`
	FormattedSize string `json:"formatted_size"`
	TypesCount    int    `json:"types_count"`
}

// AllFiles is the payload of the file index.
type AllFiles struct {
	AllFiles []FileData                  `json:"all_files"`
	ByType   map[ContentType]FilesOfType `json:"by_type"`
	Stats    AllFilesStats               `json:"stats"`
}

// TypeFileStats are file counters of one content type.
type TypeFileStats struct {
	TypeName      string `json:"type_name"`
	FilesCount    int    `json:"files_count"`
	TotalSize     int64  `json:"total_size"`
	FormattedSize string `json:"formatted_size"`
}

// FileStats is the payload of the file stats endpoint.
type FileStats struct {
	TotalFiles    int                           `json:"total_files"`
	TotalSize     int64                         `json:"total_size"`
	FormattedSize string                        `json:"formatted_size"`
	ByType        map[ContentType]TypeFileStats `json:"by_type"`
	ContentPages  int                           `json:"content_pages"`
}

// ContentStats are the profile counters.
type ContentStats struct {
	ContentPages int `json:"content_pages"`
	TotalFiles   int `json:"total_files"`
}

// Profile is the specialist profile payload.
type Profile struct {
	UserSummary
	LastLoginAt *time.Time   `json:"last_login_at"`
	CreatedAt   time.Time    `json:"created_at"`
	Statistics  ContentStats `json:"statistics"`
}

// ContentUpdate is one entry of the recent activity list.
type ContentUpdate struct {
	Type      ContentType `json:"type"`
	TypeName  string      `json:"type_name"`
	Title     string      `json:"title"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Activity is the specialist activity payload.
type Activity struct {
	LastLogin            *time.Time      `json:"last_login"`
	RegistrationDate     time.Time       `json:"registration_date"`
	Hospital             string          `json:"hospital"`
	RecentContentUpdates []ContentUpdate `json:"recent_content_updates"`
	TotalContent         int             `json:"total_content"`
}

// Settings are the specialist preferences.
type Settings struct {
	Language           string `json:"language"`
	EmailNotifications bool   `json:"email_notifications"`
	ProfileVisibility  string `json:"profile_visibility"`
}

// DefaultSettings returns the preferences every specialist starts with.
func DefaultSettings() Settings {
	return Settings{
		Language:           DefaultLocale,
		EmailNotifications: true,
		ProfileVisibility:  "internal",
	}
}

// DownloadableFile is a file ready to be streamed to the client.
type DownloadableFile struct {
	File SpecialistFile
	Body io.ReadCloser

	// Size is the length of Body as stored, which may differ from File.FileSize.
	Size int64
}
