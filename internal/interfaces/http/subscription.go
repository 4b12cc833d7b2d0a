package http

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/domain/subscription"
)

type SubscriptionHandler struct {
	service *subscription.Service
	errorResponder
}

func NewSubscriptionHandler(service *subscription.Service, showDetails bool) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:        service,
		errorResponder: errorResponder{showDetails: showDetails},
	}
}

type CreateSubscriptionRequest struct {
	Name            string                    `json:"name"`
	Category        string                    `json:"category"`
	Amount          *decimal.Decimal          `json:"amount"`
	BillingCycle    subscription.BillingCycle `json:"billingCycle"`
	NextBillingDate *dateValue                `json:"nextBillingDate"`
	Description     *string                   `json:"description"`
	Website         *string                   `json:"website"`
	ReminderDays    *int                      `json:"reminderDays"`
}

type UpdateSubscriptionRequest struct {
	Name            *string                    `json:"name,omitempty"`
	Category        *string                    `json:"category,omitempty"`
	Amount          *decimal.Decimal           `json:"amount,omitempty"`
	BillingCycle    *subscription.BillingCycle `json:"billingCycle,omitempty"`
	NextBillingDate *dateValue                 `json:"nextBillingDate,omitempty"`
	IsActive        *bool                      `json:"isActive,omitempty"`
	Description     *string                    `json:"description,omitempty"`
	Website         *string                    `json:"website,omitempty"`
	ReminderDays    *int                       `json:"reminderDays,omitempty"`
}

type SubscriptionResponse struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name"`
	Category        string                    `json:"category"`
	Amount          Money                     `json:"amount"`
	BillingCycle    subscription.BillingCycle `json:"billingCycle"`
	NextBillingDate civil.Date                `json:"nextBillingDate"`
	IsActive        bool                      `json:"isActive"`
	Description     *string                   `json:"description"`
	Website         *string                   `json:"website"`
	ReminderDays    int                       `json:"reminderDays"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

func toSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              s.ID,
		Name:            s.Name,
		Category:        s.Category,
		Amount:          Money(s.Amount),
		BillingCycle:    s.BillingCycle,
		NextBillingDate: s.NextBillingDate,
		IsActive:        s.IsActive,
		Description:     s.Description,
		Website:         s.Website,
		ReminderDays:    s.ReminderDays,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// HandleSubscriptions routes requests to the appropriate handler based on method
func (h *SubscriptionHandler) HandleSubscriptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

// HandleSubscriptionByID routes requests for a specific subscription
func (h *SubscriptionHandler) HandleSubscriptionByID(w http.ResponseWriter, r *http.Request) {
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

func (h *SubscriptionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	subs, err := h.service.List(r.Context(), p.ID)
	if err != nil {
		h.respond(w, r, err, "list subscriptions", "", "Failed to fetch subscriptions")
		return
	}

	resp := make([]SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		resp = append(resp, toSubscriptionResponse(s))
	}
	writeData(w, http.StatusOK, resp, "")
}

func (h *SubscriptionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req CreateSubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.service.Create(r.Context(), p.ID, subscription.CreateParams{
		Name:            req.Name,
		Category:        req.Category,
		Amount:          req.Amount,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: req.NextBillingDate.date(),
		Description:     req.Description,
		Website:         req.Website,
		ReminderDays:    req.ReminderDays,
	})
	if err != nil {
		h.respond(w, r, err, "create subscription", "", "Failed to create subscription")
		return
	}

	writeData(w, http.StatusCreated, toSubscriptionResponse(s), "")
}

func (h *SubscriptionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	s, err := h.service.Get(r.Context(), p.ID, id)
	if err != nil {
		h.respond(w, r, err, "get subscription", id, "Failed to fetch subscription")
		return
	}

	writeData(w, http.StatusOK, toSubscriptionResponse(s), "")
}

func (h *SubscriptionHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var req UpdateSubscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.service.Update(r.Context(), p.ID, id, subscription.UpdateParams{
		Name:            req.Name,
		Category:        req.Category,
		Amount:          req.Amount,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: req.NextBillingDate.date(),
		IsActive:        req.IsActive,
		Description:     req.Description,
		Website:         req.Website,
		ReminderDays:    req.ReminderDays,
	})
	if err != nil {
		h.respond(w, r, err, "update subscription", id, "Failed to update subscription")
		return
	}

	writeData(w, http.StatusOK, toSubscriptionResponse(s), "")
}

func (h *SubscriptionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), p.ID, id); err != nil {
		h.respond(w, r, err, "delete subscription", id, "Failed to delete subscription")
		return
	}

	writeData(w, http.StatusOK, deletedResponse{Message: "Subscription deleted successfully"}, "")
}
