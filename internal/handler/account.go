package handler

import (
	"log/slog"
	"net/http"

	"github.com/jobtracker/jobtracker/internal/handler/dto"
	"github.com/jobtracker/jobtracker/internal/service"
)

// AccountHandler handles registration and login.
type AccountHandler struct {
	svc    *service.AccountService
	logger *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	account, err := h.svc.Register(r.Context(), req.ToInput())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("account_registered", "account_id", account.ID)

	writeJSON(w, http.StatusCreated, dto.ToAccountResponse(account))
}

// Login handles POST /api/auth/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLoginResponse(result))
}
