package http

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/domain/budget"
	"moneytracker/internal/shared/logger"
)

type BudgetHandler struct {
	service *budget.Service
	errorResponder
}

func NewBudgetHandler(service *budget.Service, showDetails bool) *BudgetHandler {
	return &BudgetHandler{
		service:        service,
		errorResponder: errorResponder{showDetails: showDetails},
	}
}

type CreateBudgetRequest struct {
	Category     string           `json:"category"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount"`
	Period       budget.Period    `json:"period"`
	StartDate    *dateValue       `json:"startDate"`
	EndDate      *dateValue       `json:"endDate"`
}

type UpdateBudgetRequest struct {
	Category     *string          `json:"category,omitempty"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount,omitempty"`
	Period       *budget.Period   `json:"period,omitempty"`
	StartDate    *dateValue       `json:"startDate,omitempty"`
	EndDate      *dateValue       `json:"endDate,omitempty"`
}

// BudgetResponse carries the derived fields next to the stored ones.
// SpentAmount is null, with SpentError set, when it could not be computed.
// SpentError carries the underlying cause only when details are enabled.
type BudgetResponse struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	CategoryID   string        `json:"categoryId"`
	Category     string        `json:"category"`
	BudgetAmount Money         `json:"budgetAmount"`
	SpentAmount  *Money        `json:"spentAmount"`
	SpentError   string        `json:"spentError,omitempty"`
	Period       budget.Period `json:"period"`
	StartDate    civil.Date    `json:"startDate"`
	EndDate      civil.Date    `json:"endDate"`
	IsActive     bool          `json:"isActive"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (h *BudgetHandler) toBudgetResponse(r *http.Request, s *budget.Summary) BudgetResponse {
	b := s.Budget
	resp := BudgetResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		CategoryID:   b.CategoryID,
		Category:     s.CategoryName,
		BudgetAmount: Money(b.Amount),
		Period:       b.Period,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		IsActive:     s.IsActive,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if s.SpentErr != nil {
		log := logger.FromContext(r.Context())
		log.Error().
			Err(s.SpentErr).
			Str("operation", "sum budget spending").
			Str("resource_id", b.ID).
			Msg("spent amount unavailable")
		resp.SpentError = budget.ErrSpentUnavailable.Error()
		if h.showDetails {
			resp.SpentError = s.SpentErr.Error()
		}
	} else {
		resp.SpentAmount = moneyPtr(s.SpentAmount)
	}
	return resp
}

// HandleBudgets routes requests to the appropriate handler based on method
func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

// HandleBudgetByID routes requests for a specific budget
func (h *BudgetHandler) HandleBudgetByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *BudgetHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	summaries, err := h.service.List(r.Context(), p.ID)
	if err != nil {
		h.respond(w, r, err, "list budgets", "", "Failed to fetch budgets")
		return
	}

	resp := make([]BudgetResponse, 0, len(summaries))
	for i := range summaries {
		resp = append(resp, h.toBudgetResponse(r, &summaries[i]))
	}
	writeData(w, http.StatusOK, resp, "")
}

func (h *BudgetHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.service.Create(r.Context(), p.ID, budget.CreateParams{
		Category:  req.Category,
		Amount:    req.BudgetAmount,
		Period:    req.Period,
		StartDate: req.StartDate.date(),
		EndDate:   req.EndDate.date(),
	})
	if err != nil {
		h.respond(w, r, err, "create budget", "", "Failed to create budget")
		return
	}

	writeData(w, http.StatusCreated, h.toBudgetResponse(r, s), "Budget created successfully")
}

func (h *BudgetHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	s, err := h.service.Get(r.Context(), p.ID, id)
	if err != nil {
		h.respond(w, r, err, "get budget", id, "Failed to fetch budget")
		return
	}

	writeData(w, http.StatusOK, h.toBudgetResponse(r, s), "")
}

func (h *BudgetHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var req UpdateBudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.service.Update(r.Context(), p.ID, id, budget.UpdateParams{
		Category:  req.Category,
		Amount:    req.BudgetAmount,
		Period:    req.Period,
		StartDate: req.StartDate.date(),
		EndDate:   req.EndDate.date(),
	})
	if err != nil {
		h.respond(w, r, err, "update budget", id, "Failed to update budget")
		return
	}

	writeData(w, http.StatusOK, h.toBudgetResponse(r, s), "Budget updated successfully")
}

func (h *BudgetHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), p.ID, id); err != nil {
		h.respond(w, r, err, "delete budget", id, "Failed to delete budget")
		return
	}

	writeData(w, http.StatusOK, deletedResponse{Message: "Budget deleted successfully"}, "")
}
