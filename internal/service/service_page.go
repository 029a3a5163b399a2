package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/utils"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

// maxSlugAttempts bounds the numeric suffixes tried for a generated slug.
const maxSlugAttempts = 100

type pageService struct {
	transactor     store.Transactor
	pageRepository store.PageRepository

	validator validators.Validator
	sanitizer *sanitizer

	logger *logger.Logger
}

func NewPageService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) PageService {
	return &pageService{
		transactor:     storages.Transactor,
		pageRepository: storages.PageRepository,
		validator:      validator,
		sanitizer:      newSanitizer(),
		logger:         logger,
	}
}

func (s *pageService) List(ctx context.Context, locale string) ([]models.PageListItem, error) {
	pages, err := s.pageRepository.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.PageListItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, models.PageListItem{
			ID:        p.ID,
			Slug:      p.Slug,
			Title:     p.Title.Get(locale),
			IsHome:    p.IsHome,
			SortOrder: p.SortOrder,
		})
	}
	return items, nil
}

func (s *pageService) Home(ctx context.Context, locale string) (models.PageView, error) {
	page, err := s.pageRepository.FindHome(ctx)
	if err != nil {
		return models.PageView{}, pageError(err)
	}
	return page.View(locale), nil
}

// Navigation lists published pages except the home page.
func (s *pageService) Navigation(ctx context.Context, locale string) ([]models.NavigationItem, error) {
	pages, err := s.pageRepository.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.NavigationItem, 0, len(pages))
	for _, p := range pages {
		if p.IsHome {
			continue
		}
		items = append(items, models.NavigationItem{
			Slug:      p.Slug,
			Title:     p.Title.Get(locale),
			SortOrder: p.SortOrder,
		})
	}
	return items, nil
}

func (s *pageService) BySlug(ctx context.Context, slug, locale string) (models.PageView, error) {
	page, err := s.pageRepository.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return models.PageView{}, pageError(err)
	}
	return page.View(locale), nil
}

// Create stores a new page. Without a slug one is generated from the
// default-locale title. Marking the page as home clears the flag on every
// other page in the same transaction.
func (s *pageService) Create(ctx context.Context, req models.PageRequest) (models.Page, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Page{}, err
	}

	page := models.Page{IsPublished: true}
	s.apply(&page, req)

	var created models.Page
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		slug, err := s.resolveSlug(ctx, req.Slug, page.Title, 0)
		if err != nil {
			return err
		}
		page.Slug = slug

		if page.IsHome {
			if err = s.pageRepository.ClearHome(ctx, 0); err != nil {
				return err
			}
		}

		created, err = s.pageRepository.Create(ctx, page)
		return err
	})
	if err != nil {
		return models.Page{}, pageError(err)
	}

	log.Info().Int64("page_id", created.ID).Str("slug", created.Slug).Msg("page created")
	return created, nil
}

// Update changes only the fields present in req.
func (s *pageService) Update(ctx context.Context, id int64, req models.PageRequest) (models.Page, error) {
	if err := s.validator.Validate(ctx, req, validators.FieldPartial); err != nil {
		return models.Page{}, err
	}

	var updated models.Page
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		page, err := s.pageRepository.FindByID(ctx, id)
		if err != nil {
			return err
		}
		s.apply(&page, req)

		if req.Slug != "" && req.Slug != page.Slug {
			if page.Slug, err = s.resolveSlug(ctx, req.Slug, page.Title, page.ID); err != nil {
				return err
			}
		}

		if page.IsHome {
			if err = s.pageRepository.ClearHome(ctx, page.ID); err != nil {
				return err
			}
		}

		updated, err = s.pageRepository.Update(ctx, page)
		return err
	})
	if err != nil {
		return models.Page{}, pageError(err)
	}

	logger.FromContext(ctx).Info().Int64("page_id", updated.ID).Msg("page updated")
	return updated, nil
}

func (s *pageService) Delete(ctx context.Context, id int64) error {
	if err := s.pageRepository.Delete(ctx, id); err != nil {
		return pageError(err)
	}
	logger.FromContext(ctx).Info().Int64("page_id", id).Msg("page deleted")
	return nil
}

// apply copies the present fields of req onto page, sanitizing HTML.
func (s *pageService) apply(page *models.Page, req models.PageRequest) {
	if req.Title != nil {
		page.Title = s.sanitizer.Text(req.Title)
	}
	if req.Content != nil {
		page.Content = s.sanitizer.HTML(req.Content)
	}
	if req.MetaTitle != nil {
		page.MetaTitle = s.sanitizer.Text(req.MetaTitle)
	}
	if req.MetaDescription != nil {
		page.MetaDescription = s.sanitizer.Text(req.MetaDescription)
	}
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}
	if req.IsHome != nil {
		page.IsHome = *req.IsHome
	}
	if req.SortOrder != nil {
		page.SortOrder = *req.SortOrder
	}
}

// resolveSlug returns the requested slug when it is free. Without a
// requested slug the title is transliterated and suffixed with -2, -3, ...
// until a free slug is found.
func (s *pageService) resolveSlug(ctx context.Context, requested string, title models.Translatable, exceptID int64) (string, error) {
	if requested != "" {
		taken, err := s.pageRepository.SlugExists(ctx, requested, exceptID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", store.ErrSlugAlreadyExists
		}
		return requested, nil
	}

	base := utils.Slugify(title.Get(models.DefaultLocale))
	if base == "" {
		base = "page"
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := s.pageRepository.SlugExists(ctx, candidate, exceptID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
	return "", store.ErrSlugAlreadyExists
}

// pageError translates repository errors into service errors.
func pageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrPageNotFound):
		return ErrPageNotFound
	case errors.Is(err, store.ErrSlugAlreadyExists):
		return fmt.Errorf("%w: %w", ErrSlugAlreadyExists,
			validators.NewValidationError("slug", "The slug has already been taken."))
	}
	return err
}
