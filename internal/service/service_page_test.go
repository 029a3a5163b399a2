package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

func newTestPageService(t *testing.T) (*storeMocks, PageService) {
	t.Helper()
	mocks, storages := newStoreMocks(t)
	return mocks, NewPageService(storages, validators.NewRequestValidator(), logger.Nop())
}

func publishedPages() []models.Page {
	return []models.Page{
		{ID: 1, Slug: "home", Title: models.Translatable{"ru": "Главная", "en": "Home"}, IsHome: true, IsPublished: true},
		{ID: 2, Slug: "about", Title: models.Translatable{"ru": "О нас"}, IsPublished: true, SortOrder: 1},
		{ID: 3, Slug: "contacts", Title: models.Translatable{"ru": "Контакты", "en": "Contacts"}, IsPublished: true, SortOrder: 2},
	}
}

func TestPageService_List(t *testing.T) {
	mocks, svc := newTestPageService(t)
	ctx := context.Background()

	mocks.pages.EXPECT().ListPublished(ctx).Return(publishedPages(), nil)

	items, err := svc.List(ctx, models.LocaleEN)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, models.PageListItem{ID: 1, Slug: "home", Title: "Home", IsHome: true}, items[0])
	assert.Equal(t, "О нас", items[1].Title)
}

func TestPageService_Navigation_SkipsHome(t *testing.T) {
	mocks, svc := newTestPageService(t)
	ctx := context.Background()

	mocks.pages.EXPECT().ListPublished(ctx).Return(publishedPages(), nil)

	items, err := svc.Navigation(ctx, models.LocaleEN)

	require.NoError(t, err)
	assert.Equal(t, []models.NavigationItem{
		{Slug: "about", Title: "О нас", SortOrder: 1},
		{Slug: "contacts", Title: "Contacts", SortOrder: 2},
	}, items)
}

func TestPageService_Home(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mocks, svc := newTestPageService(t)
		ctx := context.Background()

		mocks.pages.EXPECT().FindHome(ctx).Return(publishedPages()[0], nil)

		view, err := svc.Home(ctx, models.LocaleRU)

		require.NoError(t, err)
		assert.Equal(t, "Главная", view.Title)
		assert.True(t, view.IsHome)
	})

	t.Run("no home page", func(t *testing.T) {
		mocks, svc := newTestPageService(t)
		ctx := context.Background()

		mocks.pages.EXPECT().FindHome(ctx).Return(models.Page{}, store.ErrPageNotFound)

		_, err := svc.Home(ctx, models.LocaleRU)

		assert.ErrorIs(t, err, ErrPageNotFound)
	})
}

func TestPageService_BySlug_Unpublished(t *testing.T) {
	mocks, svc := newTestPageService(t)
	ctx := context.Background()

	mocks.pages.EXPECT().FindPublishedBySlug(ctx, "draft").Return(models.Page{}, store.ErrPageNotFound)

	_, err := svc.BySlug(ctx, "draft", models.LocaleRU)

	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPageService_Create_GeneratesSlug(t *testing.T) {
	mocks, svc := newTestPageService(t)

	mocks.expectTransaction()
	gomock.InOrder(
		mocks.pages.EXPECT().SlugExists(gomock.Any(), "about-us", int64(0)).Return(true, nil),
		mocks.pages.EXPECT().SlugExists(gomock.Any(), "about-us-2", int64(0)).Return(true, nil),
		mocks.pages.EXPECT().SlugExists(gomock.Any(), "about-us-3", int64(0)).Return(false, nil),
		mocks.pages.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.Page) (models.Page, error) {
				assert.Equal(t, "about-us-3", p.Slug)
				assert.True(t, p.IsPublished)
				assert.False(t, p.IsHome)
				assert.Equal(t, "<p>Hi</p>", p.Content["ru"])
				p.ID = 4
				return p, nil
			}),
	)

	page, err := svc.Create(context.Background(), models.PageRequest{
		Title:   models.Translatable{"ru": "About Us"},
		Content: models.Translatable{"ru": `<p>Hi</p><script>steal()</script>`},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), page.ID)
}

func TestPageService_Create_HomeClearsPreviousHome(t *testing.T) {
	mocks, svc := newTestPageService(t)

	mocks.expectTransaction()
	gomock.InOrder(
		mocks.pages.EXPECT().SlugExists(gomock.Any(), "start", int64(0)).Return(false, nil),
		mocks.pages.EXPECT().ClearHome(gomock.Any(), int64(0)).Return(nil),
		mocks.pages.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.Page) (models.Page, error) {
				assert.True(t, p.IsHome)
				p.ID = 5
				return p, nil
			}),
	)

	page, err := svc.Create(context.Background(), models.PageRequest{
		Slug:   "start",
		Title:  models.Translatable{"ru": "Старт"},
		IsHome: ptr(true),
	})

	require.NoError(t, err)
	assert.True(t, page.IsHome)
}

func TestPageService_Create_TakenSlug(t *testing.T) {
	mocks, svc := newTestPageService(t)

	mocks.expectTransaction()
	mocks.pages.EXPECT().SlugExists(gomock.Any(), "about", int64(0)).Return(true, nil)

	_, err := svc.Create(context.Background(), models.PageRequest{
		Slug:  "about",
		Title: models.Translatable{"ru": "О нас"},
	})

	assert.ErrorIs(t, err, ErrSlugAlreadyExists)
	var vErr *validators.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "slug")
}

func TestPageService_Create_InvalidRequest(t *testing.T) {
	_, svc := newTestPageService(t)

	_, err := svc.Create(context.Background(), models.PageRequest{Slug: "Not A Slug"})

	assert.ErrorIs(t, err, validators.ErrValidation)
}

func TestPageService_Update_PartialKeepsOtherFields(t *testing.T) {
	mocks, svc := newTestPageService(t)

	current := models.Page{
		ID:          2,
		Slug:        "about",
		Title:       models.Translatable{"ru": "О нас"},
		Content:     models.Translatable{"ru": "<p>Текст</p>"},
		IsPublished: true,
		SortOrder:   1,
	}

	mocks.expectTransaction()
	mocks.pages.EXPECT().FindByID(gomock.Any(), int64(2)).Return(current, nil)
	mocks.pages.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.Page) (models.Page, error) {
			assert.Equal(t, "about", p.Slug)
			assert.Equal(t, current.Title, p.Title)
			assert.Equal(t, current.Content, p.Content)
			assert.False(t, p.IsPublished)
			assert.Equal(t, 1, p.SortOrder)
			return p, nil
		})

	updated, err := svc.Update(context.Background(), 2, models.PageRequest{IsPublished: ptr(false)})

	require.NoError(t, err)
	assert.False(t, updated.IsPublished)
}

func TestPageService_Update_NewSlugAndHome(t *testing.T) {
	mocks, svc := newTestPageService(t)

	mocks.expectTransaction()
	gomock.InOrder(
		mocks.pages.EXPECT().FindByID(gomock.Any(), int64(2)).
			Return(models.Page{ID: 2, Slug: "about", Title: models.Translatable{"ru": "О нас"}}, nil),
		mocks.pages.EXPECT().SlugExists(gomock.Any(), "welcome", int64(2)).Return(false, nil),
		mocks.pages.EXPECT().ClearHome(gomock.Any(), int64(2)).Return(nil),
		mocks.pages.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.Page) (models.Page, error) {
				return p, nil
			}),
	)

	updated, err := svc.Update(context.Background(), 2, models.PageRequest{Slug: "welcome", IsHome: ptr(true)})

	require.NoError(t, err)
	assert.Equal(t, "welcome", updated.Slug)
	assert.True(t, updated.IsHome)
}

func TestPageService_Update_Missing(t *testing.T) {
	mocks, svc := newTestPageService(t)

	mocks.expectTransaction()
	mocks.pages.EXPECT().FindByID(gomock.Any(), int64(9)).Return(models.Page{}, store.ErrPageNotFound)

	_, err := svc.Update(context.Background(), 9, models.PageRequest{SortOrder: ptr(3)})

	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestPageService_Delete(t *testing.T) {
	mocks, svc := newTestPageService(t)
	ctx := context.Background()

	mocks.pages.EXPECT().Delete(ctx, int64(2)).Return(nil)
	mocks.pages.EXPECT().Delete(ctx, int64(9)).Return(store.ErrPageNotFound)

	require.NoError(t, svc.Delete(ctx, 2))
	assert.ErrorIs(t, svc.Delete(ctx, 9), ErrPageNotFound)
}
