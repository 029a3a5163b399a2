package service

import (
	"strconv"

	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/models"
)

const contentNotCreatedMessage = "content not created yet"

// DownloadURL is the API path a specialist downloads a file from.
func DownloadURL(fileID int64) string {
	return "/api/v1/specialist/files/" + strconv.FormatInt(fileID, 10) + "/download"
}

// fileData resolves f to locale. A display name falls back to the original
// file name.
func fileData(f models.SpecialistFile, locale string, withType bool) models.FileData {
	data := models.FileData{
		ID:            f.ID,
		DisplayName:   f.DisplayName.Resolve(locale, f.OriginalName),
		Description:   f.Description.Get(locale),
		OriginalName:  f.OriginalName,
		FileSize:      f.FileSize,
		FormattedSize: utils.FormatFileSize(f.FileSize),
		MimeType:      f.MimeType,
		Extension:     f.Extension(),
		FileIcon:      f.Icon(),
		DownloadCount: f.DownloadCount,
		DownloadURL:   DownloadURL(f.ID),
		CreatedAt:     f.CreatedAt,
	}
	if withType {
		data.ContentType = f.ContentType
	}
	return data
}

func filesData(files []models.SpecialistFile, locale string, withType bool) []models.FileData {
	out := make([]models.FileData, 0, len(files))
	for _, f := range files {
		out = append(out, fileData(f, locale, withType))
	}
	return out
}

func contentView(c models.SpecialistContent, locale string) models.ContentView {
	return models.ContentView{
		ID:          c.ID,
		Type:        c.ContentType,
		TypeName:    c.ContentType.Name(locale),
		Title:       c.Title.Get(locale),
		Description: c.Description.Get(locale),
		Content:     c.Content.Get(locale),
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func sizeStats(files []models.SpecialistFile) models.SizeStats {
	var total int64
	for _, f := range files {
		total += f.FileSize
	}
	return models.SizeStats{
		TotalFiles:    len(files),
		TotalSize:     total,
		FormattedSize: utils.FormatFileSize(total),
	}
}

func emptyContentByType() models.ContentByType {
	return models.ContentByType{
		Files:   []models.FileData{},
		Message: contentNotCreatedMessage,
		Stats:   sizeStats(nil),
	}
}
