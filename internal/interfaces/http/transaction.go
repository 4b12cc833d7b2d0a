package http

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"moneytracker/internal/domain/transaction"
)

type TransactionHandler struct {
	service *transaction.Service
	errorResponder
}

func NewTransactionHandler(service *transaction.Service, showDetails bool) *TransactionHandler {
	return &TransactionHandler{
		service:        service,
		errorResponder: errorResponder{showDetails: showDetails},
	}
}

// Request/Response DTOs

// CreateTransactionRequest names the category by id or, as a convenience,
// by name.
type CreateTransactionRequest struct {
	Kind        transaction.Kind `json:"kind"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  string           `json:"categoryId"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        *dateValue       `json:"date"`
}

type UpdateTransactionRequest struct {
	Kind        *transaction.Kind `json:"kind,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	CategoryID  *string           `json:"categoryId,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Description *string           `json:"description,omitempty"`
	Date        *dateValue        `json:"date,omitempty"`
}

type TransactionResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Kind        transaction.Kind `json:"kind"`
	Amount      Money            `json:"amount"`
	CategoryID  string           `json:"categoryId"`
	Description string           `json:"description"`
	Date        civil.Date       `json:"date"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func toTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Kind:        t.Kind,
		Amount:      Money(t.Amount),
		CategoryID:  t.CategoryID,
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// HandleTransactions routes requests to the appropriate handler based on method
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		methodNotAllowed(w)
	}
}

// HandleTransactionByID routes requests for a specific transaction
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
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

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	filter, err := parseTransactionFilter(r)
	if err != nil {
		h.respond(w, r, err, "list transactions", "", "Failed to fetch transactions")
		return
	}

	txs, err := h.service.List(r.Context(), p.ID, filter)
	if err != nil {
		h.respond(w, r, err, "list transactions", "", "Failed to fetch transactions")
		return
	}

	resp := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		resp = append(resp, toTransactionResponse(t))
	}
	writeData(w, http.StatusOK, resp, "")
}

func parseTransactionFilter(r *http.Request) (transaction.Filter, error) {
	q := r.URL.Query()
	filter := transaction.Filter{
		Kind:       transaction.Kind(q.Get("kind")),
		CategoryID: q.Get("categoryId"),
	}

	if s := q.Get("startDate"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &d
	}
	if s := q.Get("endDate"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &d
	}
	if s := q.Get("minAmount"); s != "" {
		d, err := parseDecimal("minAmount", s)
		if err != nil {
			return filter, err
		}
		filter.MinAmount = &d
	}
	if s := q.Get("maxAmount"); s != "" {
		d, err := parseDecimal("maxAmount", s)
		if err != nil {
			return filter, err
		}
		filter.MaxAmount = &d
	}
	return filter, nil
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.service.Create(r.Context(), p.ID, transaction.CreateParams{
		Kind:         req.Kind,
		Amount:       req.Amount,
		CategoryID:   req.CategoryID,
		CategoryName: req.Category,
		Description:  req.Description,
		Date:         req.Date.date(),
	})
	if err != nil {
		h.respond(w, r, err, "create transaction", "", "Failed to create transaction")
		return
	}

	writeData(w, http.StatusCreated, toTransactionResponse(t), "Transaction created successfully")
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	t, err := h.service.Get(r.Context(), p.ID, id)
	if err != nil {
		h.respond(w, r, err, "get transaction", id, "Failed to fetch transaction")
		return
	}

	writeData(w, http.StatusOK, toTransactionResponse(t), "")
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var req UpdateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.service.Update(r.Context(), p.ID, id, transaction.UpdateParams{
		Kind:         req.Kind,
		Amount:       req.Amount,
		CategoryID:   req.CategoryID,
		CategoryName: req.Category,
		Description:  req.Description,
		Date:         req.Date.date(),
	})
	if err != nil {
		h.respond(w, r, err, "update transaction", id, "Failed to update transaction")
		return
	}

	writeData(w, http.StatusOK, toTransactionResponse(t), "Transaction updated successfully")
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), p.ID, id); err != nil {
		h.respond(w, r, err, "delete transaction", id, "Failed to delete transaction")
		return
	}

	writeData(w, http.StatusOK, deletedResponse{Message: "Transaction deleted successfully"}, "")
}
