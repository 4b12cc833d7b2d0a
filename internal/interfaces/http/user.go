package http

import (
	"net/http"
	"time"

	"moneytracker/internal/domain/user"
)

type UserHandler struct {
	service *user.Service
	errorResponder
}

func NewUserHandler(service *user.Service, showDetails bool) *UserHandler {
	return &UserHandler{
		service:        service,
		errorResponder: errorResponder{showDetails: showDetails},
	}
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	FirebaseUID string    `json:"firebaseUid"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// HandleProfile handles both GET and PUT requests for the current user
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetProfile(w, r)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdateProfile(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *UserHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	u, err := h.service.Profile(r.Context(), p.ID, p.Email)
	if err != nil {
		h.respond(w, r, err, "get profile", p.ID, "Failed to fetch user profile")
		return
	}

	writeData(w, http.StatusOK, toUserResponse(u), "")
}

func (h *UserHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), p.ID, p.Email, user.UpdateProfileParams{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		h.respond(w, r, err, "update profile", p.ID, "Failed to update user profile")
		return
	}

	writeData(w, http.StatusOK, toUserResponse(u), "Profile updated successfully")
}
