package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stock-analyzer/backend/internal/api/middleware"
	"github.com/stock-analyzer/backend/internal/api/response"
	"github.com/stock-analyzer/backend/internal/apperrors"
	"github.com/stock-analyzer/backend/internal/service"
)

// userNotConnectedMessage is surfaced on every SnapTrade operation that
// requires a stored secret the caller does not have yet.
const userNotConnectedMessage = "User not found. Please connect your account first."

// SnapTradeHandler handles brokerage-connection HTTP requests
type SnapTradeHandler struct {
	snapTradeService *service.SnapTradeService
	frontendURL      string
}

// NewSnapTradeHandler creates a new SnapTradeHandler
func NewSnapTradeHandler(snapTradeService *service.SnapTradeService, frontendURL string) *SnapTradeHandler {
	return &SnapTradeHandler{
		snapTradeService: snapTradeService,
		frontendURL:      frontendURL,
	}
}

// CreateUser handles POST /api/snaptrade/user
func (h *SnapTradeHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	if _, err := h.snapTradeService.RegisterUser(r.Context(), userID); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.SuccessMessage(w, "User created successfully")
}

// InitiateConnection handles POST /api/snaptrade/connect/initiate
func (h *SnapTradeHandler) InitiateConnection(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	redirectURI := fmt.Sprintf("%s://%s/api/snaptrade/callback", scheme, r.Host)

	link, err := h.snapTradeService.InitiateConnection(r.Context(), userID, redirectURI)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, map[string]string{"redirectUri": link})
}

// Portfolio handles GET /api/snaptrade/portfolio
func (h *SnapTradeHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	portfolio, err := h.snapTradeService.GetPortfolio(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotConnected) {
			response.Error(w, http.StatusNotFound, userNotConnectedMessage)
			return
		}
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, portfolio)
}

// Accounts handles GET /api/snaptrade/accounts
func (h *SnapTradeHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	accounts, err := h.snapTradeService.GetAccounts(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotConnected) {
			response.Error(w, http.StatusNotFound, userNotConnectedMessage)
			return
		}
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, accounts)
}

// Holdings handles GET /api/snaptrade/accounts/{accountId}/holdings
func (h *SnapTradeHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	accountID := chi.URLParam(r, "accountId")

	holdings, err := h.snapTradeService.GetHoldings(r.Context(), userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotConnected) {
			response.Error(w, http.StatusNotFound, userNotConnectedMessage)
			return
		}
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, holdings)
}

// Brokerages handles GET /api/snaptrade/brokerages
func (h *SnapTradeHandler) Brokerages(w http.ResponseWriter, r *http.Request) {
	brokerages, err := h.snapTradeService.GetBrokerages(r.Context())
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	response.Success(w, brokerages)
}

// Callback handles GET /api/snaptrade/callback?code=&state= by sending
// the caller back to the frontend portfolio page. The code and state
// parameters are consumed by the provider's own flow and are not needed
// here.
func (h *SnapTradeHandler) Callback(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.frontendURL+"/portfolio", http.StatusFound)
}
