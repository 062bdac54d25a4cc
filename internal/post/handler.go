package post

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/common"
)

type Handler struct {
	svc PostService
}

func NewHandler(svc PostService) *Handler {
	return &Handler{svc: svc}
}

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type commentRequest struct {
	Content  string  `json:"content"`
	ParentID *uint64 `json:"parent_id"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/posts", common.RequireUser(h.CreatePost)).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}", common.RequireUser(h.EditPost)).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id}", common.RequireUser(h.DeletePost)).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{id}/like", common.RequireUser(h.LikePost)).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/like", common.RequireUser(h.UnlikePost)).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{id}/comments", h.PostComments).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}/comments", common.RequireUser(h.AddComment)).Methods(http.MethodPost)
	r.HandleFunc("/comments/{id}", common.RequireUser(h.EditComment)).Methods(http.MethodPut)
	r.HandleFunc("/comments/{id}", common.RequireUser(h.DeleteComment)).Methods(http.MethodDelete)
	r.HandleFunc("/comments/{id}/replies", h.CommentReplies).Methods(http.MethodGet)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req postRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	post, err := h.svc.CreatePost(r.Context(), userID, req.Title, req.Content, req.ImageURL)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) EditPost(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	var req postRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	post, err := h.svc.EditPost(r.Context(), userID, postID, req.Title, req.Content)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	h.postAction(w, r, h.svc.DeletePost, "post deleted")
}

func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.postAction(w, r, h.svc.LikePost, "post liked")
}

func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	h.postAction(w, r, h.svc.UnlikePost, "post unliked")
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	var req commentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	comment, err := h.svc.AddComment(r.Context(), userID, postID, req.Content, req.ParentID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) PostComments(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := common.UserIDFromContext(r.Context())
	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	page, perPage := common.PageParams(r, commentPageSize, maxCommentPageSize)
	res, err := h.svc.PostComments(r.Context(), viewerID, postID, page, perPage)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) EditComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	commentID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	var req commentRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	comment, err := h.svc.EditComment(r.Context(), userID, commentID, req.Content)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, comment)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	commentID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteComment(r.Context(), userID, commentID); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "comment deleted")
}

func (h *Handler) CommentReplies(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := common.UserIDFromContext(r.Context())
	commentID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	replies, err := h.svc.CommentReplies(r.Context(), viewerID, commentID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"replies": replies})
}

type postActionFunc func(ctx context.Context, userID, postID uint64) error

func (h *Handler) postAction(w http.ResponseWriter, r *http.Request, action postActionFunc, msg string) {
	userID, _ := common.UserIDFromContext(r.Context())
	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := action(r.Context(), userID, postID); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, msg)
}
