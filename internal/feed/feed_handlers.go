package feed

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/common"
)

type Handler struct {
	svc FeedService
}

func NewHandler(svc FeedService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/feed", h.Feed).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", h.Post).Methods(http.MethodGet)
}

// Feed serves GET /feed?mode=all|following&page=&per_page=. Anonymous callers
// get the public part of mode=all.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	mode, err := ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	viewerID, _ := common.UserIDFromContext(r.Context())
	page, perPage := common.QueryInt(r, "page", 1), common.QueryInt(r, "per_page", 0)

	res, err := h.svc.Feed(r.Context(), viewerID, mode, page, perPage)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	postID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	viewerID, _ := common.UserIDFromContext(r.Context())

	view, err := h.svc.Post(r.Context(), viewerID, postID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, view)
}
