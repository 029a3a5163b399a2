package models

import "time"

// Page is a public CMS page addressed by its slug.
type Page struct {
	ID              int64        `json:"id"`
	Slug            string       `json:"slug"`
	Title           Translatable `json:"title"`
	Content         Translatable `json:"content"`
	MetaTitle       Translatable `json:"meta_title"`
	MetaDescription Translatable `json:"meta_description"`
	IsPublished     bool         `json:"is_published"`
	// IsHome marks the site root. At most one page carries it.
	IsHome    bool      `json:"is_home"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Page model.
func (p Page) TableName() string {
	return "pages"
}

// PageListItem is the projection used by the page index.
type PageListItem struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	IsHome    bool   `json:"is_home"`
	SortOrder int    `json:"sort_order"`
}

// NavigationItem is the projection used by the navigation menu.
type NavigationItem struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	SortOrder int    `json:"sort_order"`
}

// PageView is a single page resolved to one locale.
type PageView struct {
	ID              int64  `json:"id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	IsHome          bool   `json:"is_home"`
}

// View resolves p to locale.
func (p Page) View(locale string) PageView {
	return PageView{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title.Get(locale),
		Content:         p.Content.Get(locale),
		MetaTitle:       p.MetaTitle.Get(locale),
		MetaDescription: p.MetaDescription.Get(locale),
		IsHome:          p.IsHome,
	}
}
