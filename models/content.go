package models

import "time"

// ContentType classifies a specialist's content bucket.
type ContentType string

const (
	ContentTypeLegislation ContentType = "legislation"
	ContentTypeInformation ContentType = "information"
)

// AllContentTypes returns every content type in display order.
func AllContentTypes() []ContentType {
	return []ContentType{ContentTypeLegislation, ContentTypeInformation}
}

// IsValid reports whether c is a known content type.
func (c ContentType) IsValid() bool {
	return c == ContentTypeLegislation || c == ContentTypeInformation
}

var contentTypeNames = map[ContentType]Translatable{
	ContentTypeLegislation: {
		LocaleRU: "Законодательство",
		LocaleBE: "Заканадаўства",
		LocaleEN: "Legislation",
	},
	ContentTypeInformation: {
		LocaleRU: "Информация",
		LocaleBE: "Інфармацыя",
		LocaleEN: "Information",
	},
}

// Name returns the human readable label of c in locale. An unknown locale
// or type yields the type code itself.
func (c ContentType) Name(locale string) string {
	names, ok := contentTypeNames[c]
	if !ok {
		return string(c)
	}
	if name, ok := names[locale]; ok {
		return name
	}
	return string(c)
}

// ContentTypeTranslations returns the label table for every type.
func ContentTypeTranslations() map[ContentType]Translatable {
	out := make(map[ContentType]Translatable, len(contentTypeNames))
	for k, v := range contentTypeNames {
		cp := make(Translatable, len(v))
		for l, s := range v {
			cp[l] = s
		}
		out[k] = cp
	}
	return out
}

// SpecialistContent is the single content page a specialist owns for one
// content type. The pair (UserID, ContentType) is unique.
type SpecialistContent struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	ContentType ContentType  `json:"content_type"`
	Title       Translatable `json:"title"`
	Description Translatable `json:"description"`
	Content     Translatable `json:"content"`
	IsActive    bool         `json:"is_active"`
	SortOrder   int          `json:"sort_order"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Files holds the attached files when loaded.
	Files []SpecialistFile `json:"-"`
}

// TableName returns the name of the database table
// associated with the SpecialistContent model.
func (c SpecialistContent) TableName() string {
	return "specialist_contents"
}

// BelongsToUser reports whether userID owns the content.
func (c SpecialistContent) BelongsToUser(userID int64) bool {
	return c.UserID == userID
}

// TotalFileSize sums the sizes of the loaded files.
func (c SpecialistContent) TotalFileSize() int64 {
	var total int64
	for _, f := range c.Files {
		total += f.FileSize
	}
	return total
}
