package http

import (
	"net/http"
	"time"

	"moneytracker/internal/domain/category"
)

type CategoryHandler struct {
	resolver *category.Resolver
	errorResponder
}

func NewCategoryHandler(resolver *category.Resolver, showDetails bool) *CategoryHandler {
	return &CategoryHandler{
		resolver:       resolver,
		errorResponder: errorResponder{showDetails: showDetails},
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// HandleCategories lists the caller's categories or resolves one by name.
// Posting an existing name returns the existing category.
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	cats, err := h.resolver.List(r.Context(), p.ID)
	if err != nil {
		h.respond(w, r, err, "list categories", "", "Failed to fetch categories")
		return
	}

	resp := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	writeData(w, http.StatusOK, resp, "")
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.resolver.Resolve(r.Context(), p.ID, req.Name)
	if err != nil {
		h.respond(w, r, err, "resolve category", "", "Failed to create category")
		return
	}

	name, _ := category.NormalizeName(req.Name)
	writeData(w, http.StatusOK, CategoryResponse{ID: id, Name: name}, "")
}
