package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) pagesIndex(w http.ResponseWriter, r *http.Request) {
	pages, err := h.services.PageService.List(r.Context(), requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, pages)
}

func (h *Handler) homePage(w http.ResponseWriter, r *http.Request) {
	page, err := h.services.PageService.Home(r.Context(), requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, page)
}

func (h *Handler) navigation(w http.ResponseWriter, r *http.Request) {
	items, err := h.services.PageService.Navigation(r.Context(), requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, items)
}

func (h *Handler) pageBySlug(w http.ResponseWriter, r *http.Request) {
	page, err := h.services.PageService.BySlug(r.Context(), chi.URLParam(r, "slug"), requestLocale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, page)
}
