package moderation

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"socialhub/internal/audit"
	"socialhub/internal/common"
	"socialhub/internal/dbmysql"
)

type Handler struct {
	svc ModerationService
}

func NewHandler(svc ModerationService) *Handler {
	return &Handler{svc: svc}
}

type submitReportRequest struct {
	TargetType common.ReportTarget `json:"target_type"`
	TargetID   uint64              `json:"target_id"`
	Reason     string              `json:"reason"`
}

type disableUserRequest struct {
	Days int `json:"days"`
}

type disableUserResponse struct {
	Success       bool      `json:"success"`
	DisabledUntil time.Time `json:"disabled_until"`
}

// RegisterRoutes mounts report submission for users and the /moderation tree
// for moderators.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/reports", common.RequireUser(h.SubmitReport)).Methods(http.MethodPost)

	m := r.PathPrefix("/moderation").Subrouter()
	m.HandleFunc("/reports/queue", common.RequireModerator(h.Queue)).Methods(http.MethodGet)
	m.HandleFunc("/reports", common.RequireModerator(h.Reports)).Methods(http.MethodGet)
	m.HandleFunc("/reports/{id}", common.RequireModerator(h.Report)).Methods(http.MethodGet)
	m.HandleFunc("/reports/{id}/review", common.RequireModerator(h.transition(h.svc.ReviewReport))).Methods(http.MethodPost)
	m.HandleFunc("/reports/{id}/resolve", common.RequireModerator(h.transition(h.svc.ResolveReport))).Methods(http.MethodPost)
	m.HandleFunc("/reports/{id}/reject", common.RequireModerator(h.transition(h.svc.RejectReport))).Methods(http.MethodPost)
	m.HandleFunc("/reports/{id}/disable-user", common.RequireModerator(h.DisableUser)).Methods(http.MethodPost)
	m.HandleFunc("/reports/{id}/remove-post", common.RequireModerator(h.removal(h.svc.RemoveReportedPost, "post removed"))).Methods(http.MethodPost)
	m.HandleFunc("/reports/{id}/remove-comment", common.RequireModerator(h.removal(h.svc.RemoveReportedComment, "comment removed"))).Methods(http.MethodPost)
	m.HandleFunc("/logs", common.RequireModerator(h.Logs)).Methods(http.MethodGet)
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req submitReportRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	report, err := h.svc.SubmitReport(r.Context(), userID, req.TargetType, req.TargetID, req.Reason)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, report)
}

func (h *Handler) Queue(w http.ResponseWriter, r *http.Request) {
	mod, _ := common.PrincipalFromContext(r.Context())
	reports, err := h.svc.ReportQueue(r.Context(), mod.ModLevel)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	if reports == nil {
		reports = []dbmysql.Report{}
	}
	common.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	mod, _ := common.PrincipalFromContext(r.Context())
	page, perPage := common.PageParams(r, reportPageSize, maxReportPageSize)
	result, err := h.svc.Reports(r.Context(), mod.ModLevel, page, perPage)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	mod, _ := common.PrincipalFromContext(r.Context())
	reportID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	report, err := h.svc.Report(r.Context(), mod.ModLevel, reportID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) transition(fn func(context.Context, common.Principal, uint64) (*dbmysql.Report, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod, _ := common.PrincipalFromContext(r.Context())
		reportID, err := common.PathID(r, "id")
		if err != nil {
			common.WriteError(w, r, err)
			return
		}
		report, err := fn(r.Context(), mod, reportID)
		if err != nil {
			common.WriteError(w, r, err)
			return
		}
		common.WriteJSON(w, http.StatusOK, report)
	}
}

func (h *Handler) DisableUser(w http.ResponseWriter, r *http.Request) {
	mod, _ := common.PrincipalFromContext(r.Context())
	reportID, err := common.PathID(r, "id")
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	var req disableUserRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	until, err := h.svc.DisableUser(r.Context(), mod, reportID, req.Days)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, disableUserResponse{Success: true, DisabledUntil: until})
}

func (h *Handler) removal(fn func(context.Context, common.Principal, uint64) error, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod, _ := common.PrincipalFromContext(r.Context())
		reportID, err := common.PathID(r, "id")
		if err != nil {
			common.WriteError(w, r, err)
			return
		}
		if err := fn(r.Context(), mod, reportID); err != nil {
			common.WriteError(w, r, err)
			return
		}
		common.WriteMessage(w, http.StatusOK, msg)
	}
}

// Logs serves the audit trail, optionally filtered by ?user_id= and ?action=.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	page, perPage := common.PageParams(r, reportPageSize, maxReportPageSize)
	filter := audit.LogFilter{Action: common.ActionType(r.URL.Query().Get("action"))}
	if userID := common.QueryInt(r, "user_id", 0); userID > 0 {
		filter.UserID = uint64(userID)
	}
	result, err := h.svc.ApplicationLog(r.Context(), filter, page, perPage)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, result)
}
