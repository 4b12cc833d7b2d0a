package http

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/domain/savings"
)

type SavingsHandler struct {
	service *savings.Service
	errorResponder
}

func NewSavingsHandler(service *savings.Service, showDetails bool) *SavingsHandler {
	return &SavingsHandler{
		service:        service,
		errorResponder: errorResponder{showDetails: showDetails},
	}
}

type CreateSavingsGoalRequest struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Category      string           `json:"category"`
	TargetDate    *dateValue       `json:"targetDate"`
	Priority      savings.Priority `json:"priority"`
}

// UpdateSavingsGoalRequest treats "targetDate": null as clearing the date.
type UpdateSavingsGoalRequest struct {
	Title         *string           `json:"title,omitempty"`
	Description   *string           `json:"description,omitempty"`
	TargetAmount  *decimal.Decimal  `json:"targetAmount,omitempty"`
	CurrentAmount *decimal.Decimal  `json:"currentAmount,omitempty"`
	Category      *string           `json:"category,omitempty"`
	TargetDate    optionalDate      `json:"targetDate"`
	Priority      *savings.Priority `json:"priority,omitempty"`
}

type SavingsGoalResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	TargetAmount  Money            `json:"targetAmount"`
	CurrentAmount Money            `json:"currentAmount"`
	Category      string           `json:"category"`
	TargetDate    *civil.Date      `json:"targetDate"`
	Priority      savings.Priority `json:"priority"`
	IsCompleted   bool             `json:"isCompleted"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func toSavingsGoalResponse(g *savings.SavingsGoal) SavingsGoalResponse {
	return SavingsGoalResponse{
		ID:            g.ID,
		UserID:        g.UserID,
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  Money(g.TargetAmount),
		CurrentAmount: Money(g.CurrentAmount),
		Category:      g.Category,
		TargetDate:    g.TargetDate,
		Priority:      g.Priority,
		IsCompleted:   g.IsCompleted,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// HandleSavings routes requests to the appropriate handler based on method
func (h *SavingsHandler) HandleSavings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

// HandleSavingsByID routes requests for a specific savings goal
func (h *SavingsHandler) HandleSavingsByID(w http.ResponseWriter, r *http.Request) {
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

func (h *SavingsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	goals, err := h.service.List(r.Context(), p.ID)
	if err != nil {
		h.respond(w, r, err, "list savings goals", "", "Failed to fetch savings goals")
		return
	}

	resp := make([]SavingsGoalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, toSavingsGoalResponse(g))
	}
	writeData(w, http.StatusOK, resp, "")
}

func (h *SavingsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req CreateSavingsGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	g, err := h.service.Create(r.Context(), p.ID, savings.CreateParams{
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Category:      req.Category,
		TargetDate:    req.TargetDate.date(),
		Priority:      req.Priority,
	})
	if err != nil {
		h.respond(w, r, err, "create savings goal", "", "Failed to create savings goal")
		return
	}

	writeData(w, http.StatusCreated, toSavingsGoalResponse(g), "Savings goal created successfully")
}

func (h *SavingsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	g, err := h.service.Get(r.Context(), p.ID, id)
	if err != nil {
		h.respond(w, r, err, "get savings goal", id, "Failed to fetch savings goal")
		return
	}

	writeData(w, http.StatusOK, toSavingsGoalResponse(g), "")
}

func (h *SavingsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var req UpdateSavingsGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := savings.UpdateParams{
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Category:      req.Category,
		Priority:      req.Priority,
	}
	if req.TargetDate.Set {
		params.TargetDate = req.TargetDate.Value
		params.ClearTargetDate = req.TargetDate.Value == nil
	}

	g, err := h.service.Update(r.Context(), p.ID, id, params)
	if err != nil {
		h.respond(w, r, err, "update savings goal", id, "Failed to update savings goal")
		return
	}

	writeData(w, http.StatusOK, toSavingsGoalResponse(g), "Savings goal updated successfully")
}

func (h *SavingsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), p.ID, id); err != nil {
		h.respond(w, r, err, "delete savings goal", id, "Failed to delete savings goal")
		return
	}

	writeData(w, http.StatusOK, deletedResponse{Message: "Savings goal deleted successfully"}, "")
}
