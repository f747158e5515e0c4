package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/reports"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/utils"
)

// SessionHandler implements the identifier-selection login: the client picks
// a UserID from the investor sheet, and a session token scopes the rest of
// the API to that investor. There are no credentials; the workbook itself is
// the access list.
type SessionHandler struct {
	reportService reports.ReportService
	jwtSecret     []byte
	tokenExpiry   time.Duration
}

func NewSessionHandler(reportService reports.ReportService, jwtSecret string, tokenExpiry time.Duration) *SessionHandler {
	return &SessionHandler{
		reportService: reportService,
		jwtSecret:     []byte(jwtSecret),
		tokenExpiry:   tokenExpiry,
	}
}

// HandleListUsers returns the user identifiers for the selection dropdown.
func (h *SessionHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	userIDs, err := h.reportService.ListUserIDs(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Error listing user IDs", "error", err)
		utils.SendJSONError(w, "Error loading investor data", http.StatusServiceUnavailable)
		return
	}
	if userIDs == nil {
		userIDs = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"user_ids": userIDs})
}

type sessionRequest struct {
	UserID string `json:"user_id"`
}

type sessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// HandleCreateSession validates the selected identifier against the investor
// sheet and issues a session token. An unknown identifier is the one error
// the computation layer surfaces, and it maps to 404 here.
func (h *SessionHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		utils.SendJSONError(w, "user_id required", http.StatusBadRequest)
		return
	}

	metrics, err := h.reportService.GetUserMetrics(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, reports.ErrUserNotFound) {
			logger.FromContext(r.Context()).Warn("Session requested for unknown user", "userID", req.UserID)
			utils.SendJSONError(w, "User not found in records", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Error validating user for session", "userID", req.UserID, "error", err)
		utils.SendJSONError(w, "Error loading investor data", http.StatusServiceUnavailable)
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   req.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenExpiry)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error signing session token", "error", err)
		utils.SendJSONError(w, "Error creating session", http.StatusInternalServerError)
		return
	}

	logger.FromContext(r.Context()).Info("Session created", "userID", req.UserID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessionResponse{Token: token, UserID: req.UserID, Name: metrics.Name})
}

// AuthMiddleware validates the Bearer session token and propagates the user
// identifier into the request context and its logger.
func (h *SessionHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger := logger.FromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ctxLogger.Debug("AuthMiddleware: Authorization header missing", "path", r.URL.Path)
			utils.SendJSONError(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			ctxLogger.Debug("AuthMiddleware: Token string empty", "path", r.URL.Path)
			utils.SendJSONError(w, "Malformed token", http.StatusUnauthorized)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return h.jwtSecret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			ctxLogger.Warn("AuthMiddleware: Token validation failed", "path", r.URL.Path, "error", err)
			utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		enrichedLogger := ctxLogger.With("userID", claims.Subject)
		ctx := logger.ToContext(r.Context(), enrichedLogger)
		ctx = context.WithValue(ctx, userIDContextKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
