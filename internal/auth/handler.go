package auth

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/common"
)

type Handler struct {
	svc AuthService
}

func NewHandler(svc AuthService) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type moderatorLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type codeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	Code            string `json:"code"`
}

type otpToggleRequest struct {
	Enabled bool `json:"enabled"`
	Confirm bool `json:"confirm"`
}

type userCodeRequest struct {
	Code string `json:"code"`
}

type registerResponse struct {
	Success  bool   `json:"success"`
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// RegisterRoutes mounts the authentication endpoints under r (normally /api/v1).
func (h *Handler) RegisterRoutes(r *mux.Router) {
	a := r.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	a.HandleFunc("/verify-registration", h.VerifyRegistration).Methods(http.MethodPost)
	a.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	a.HandleFunc("/moderator/login", h.ModeratorLogin).Methods(http.MethodPost)
	a.HandleFunc("/verify-otp", h.VerifyLoginOTP).Methods(http.MethodPost)
	a.HandleFunc("/resend-otp", h.ResendLoginOTP).Methods(http.MethodPost)
	a.HandleFunc("/forgot-password", h.ForgotPassword).Methods(http.MethodPost)
	a.HandleFunc("/reset-password", h.ResetPassword).Methods(http.MethodPost)

	a.HandleFunc("/password/otp", common.RequireUser(h.RequestPasswordChangeOTP)).Methods(http.MethodPost)
	a.HandleFunc("/password", common.RequireUser(h.ChangePassword)).Methods(http.MethodPut)
	a.HandleFunc("/otp", common.RequireUser(h.SetOTPEnabled)).Methods(http.MethodPut)
	a.HandleFunc("/email", common.RequireUser(h.RequestEmailUpdate)).Methods(http.MethodPut)
	a.HandleFunc("/email/verify", common.RequireUser(h.VerifyEmailUpdate)).Methods(http.MethodPost)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, registerResponse{
		Success:  true,
		UserID:   user.ID,
		Username: user.Username,
		Message:  "verification code sent to " + user.Email,
	})
}

func (h *Handler) VerifyRegistration(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	res, err := h.svc.VerifyRegistration(r.Context(), req.Email, req.Code)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	res, err := h.svc.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	writeAuthResult(w, res)
}

func (h *Handler) ModeratorLogin(w http.ResponseWriter, r *http.Request) {
	var req moderatorLoginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	res, err := h.svc.ModeratorLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	writeAuthResult(w, res)
}

func (h *Handler) VerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	res, err := h.svc.VerifyLoginOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) ResendLoginOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.ResendLoginOTP(r.Context(), req.Email); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "a new code has been sent")
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "if the address is registered a reset code has been sent")
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "password updated")
}

func (h *Handler) RequestPasswordChangeOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	if err := h.svc.RequestPasswordChangeOTP(r.Context(), userID); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "verification code sent")
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req changePasswordRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword, req.Code); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "password updated")
}

func (h *Handler) SetOTPEnabled(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req otpToggleRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.SetOTPEnabled(r.Context(), userID, req.Enabled, req.Confirm); err != nil {
		common.WriteError(w, r, err)
		return
	}
	msg := "two-step login disabled"
	if req.Enabled {
		msg = "two-step login enabled"
	}
	common.WriteMessage(w, http.StatusOK, msg)
}

func (h *Handler) RequestEmailUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req emailRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.RequestEmailUpdate(r.Context(), userID, req.Email); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusAccepted, "verification code sent to the new address")
}

func (h *Handler) VerifyEmailUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserIDFromContext(r.Context())
	var req userCodeRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := h.svc.VerifyEmailUpdate(r.Context(), userID, req.Code); err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteMessage(w, http.StatusOK, "email updated")
}

// writeAuthResult answers 202 while a second factor is outstanding.
func writeAuthResult(w http.ResponseWriter, res *AuthResult) {
	code := http.StatusOK
	if res.OTPRequired {
		code = http.StatusAccepted
	}
	common.WriteJSON(w, code, res)
}
