package profile

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/common"
)

type Handler struct {
	svc ProfileService
}

func NewHandler(svc ProfileService) *Handler {
	return &Handler{svc: svc}
}

type respondRequest struct {
	Action string `json:"action"`
}

type visibilityRequest struct {
	Visibility common.Visibility `json:"visibility"`
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

// RegisterRoutes mounts the /users tree. The literal routes come before
// /users/{id} so they are matched first.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/users/search", h.SearchUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/suggestions", common.RequireUser(h.SuggestedUsers)).Methods(http.MethodGet)

	r.HandleFunc("/users/me", common.RequireUser(h.UpdateProfile)).Methods(http.MethodPut)
	r.HandleFunc("/users/me", common.RequireUser(h.DeleteAccount)).Methods(http.MethodDelete)
	r.HandleFunc("/users/me/visibility", common.RequireUser(h.ChangeVisibility)).Methods(http.MethodPut)
	r.HandleFunc("/users/me/follow-requests", common.RequireUser(h.PendingRequests)).Methods(http.MethodGet)
	r.HandleFunc("/users/me/follow-requests/{id}", common.RequireUser(h.RespondToFollowRequest)).Methods(http.MethodPost)
	r.HandleFunc("/users/me/followers/{id}", common.RequireUser(h.RemoveFollower)).Methods(http.MethodDelete)

	r.HandleFunc("/users/{id}", h.Profile).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/stats", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/posts", h.UserPosts).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/followers", h.Followers).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/following", h.Following).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/follow-status", common.RequireUser(h.FollowStatus)).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/follow", common.RequireUser(h.Follow)).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}/follow", common.RequireUser(h.Unfollow)).Methods(http.MethodDelete)
	r.HandleFunc("/users/{id}/follow-request", common.RequireUser(h.CancelFollowRequest)).Methods(http.MethodDelete)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	viewerID, _ := common.UserIDFromContext(r.Context())
	view, err := h.svc.Profile(r.Context(), viewerID, userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) UserPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	viewerID, _ := common.UserIDFromContext(r.Context())
	page, perPage := common.PageParams(r, listPageSize, maxListPageSize)
	res, err := h.svc.UserPosts(r.Context(), viewerID, userID, page, perPage)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	h.followList(w, r, h.svc.Followers)
}

func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	h.followList(w, r, h.svc.Following)
}

type followListFunc func(ctx context.Context, userID uint64, page, perPage int) (common.Page[FollowEntry], error)

func (h *Handler) followList(w http.ResponseWriter, r *http.Request, list followListFunc) {
	userID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	page, perPage := common.PageParams(r, listPageSize, maxListPageSize)
	res, err := list(r.Context(), userID, page, perPage)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) FollowStatus(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := common.UserIDFromContext(r.Context())
	targetID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	state, err := h.svc.FollowStatus(r.Context(), viewerID, targetID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := common.UserIDFromContext(r.Context())
	targetID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	status, err := h.svc.SendFollowRequest(r.Context(), viewerID, targetID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	msg := "follow request sent"
	if status == common.FollowAccepted {
		msg = "now following user"
	}
	common.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"status":  status,
		"message": msg,
	})
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.edgeAction(w, r, h.svc.Unfollow, "unfollowed user")
}

func (h *Handler) CancelFollowRequest(w http.ResponseWriter, r *http.Request) {
	h.edgeAction(w, r, h.svc.CancelFollowRequest, "follow request cancelled")
}

func (h *Handler) RemoveFollower(w http.ResponseWriter, r *http.Request) {
	h.edgeAction(w, r, h.svc.RemoveFollower, "follower removed")
}

type edgeActionFunc func(ctx context.Context, userID, otherID uint64) error

func (h *Handler) edgeAction(w http.ResponseWriter, r *http.Request, action edgeActionFunc, msg string) {
	userID, _ := common.UserIDFromContext(r.Context())
	otherID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := action(r.Context(), userID, otherID); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, msg)
}

func (h *Handler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	requests, err := h.svc.PendingRequests(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"count":    len(requests),
	})
}

func (h *Handler) RespondToFollowRequest(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	requesterID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	var req respondRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	status, err := h.svc.RespondToFollowRequest(r.Context(), userID, requesterID, req.Action)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": status})
}

func (h *Handler) SuggestedUsers(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	users, err := h.svc.SuggestedUsers(r.Context(), userID, common.QueryInt(r, "limit", suggestionLimit))
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	page, perPage := common.PageParams(r, listPageSize, maxListPageSize)
	res, err := h.svc.SearchUsers(r.Context(), r.URL.Query().Get("q"), page, perPage)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req ProfileUpdate
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	user, err := h.svc.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) ChangeVisibility(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req visibilityRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	user, err := h.svc.ChangeVisibility(r.Context(), userID, req.Visibility)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req deleteAccountRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteAccount(r.Context(), userID, req.Password); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "account deleted")
}
