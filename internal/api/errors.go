package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/pkg/httputil"
)

type statusRule struct {
	target  error
	status  int
	message string
}

var statusRules = []statusRule{
	{errorvalues.ErrNotAuthenticated, http.StatusUnauthorized, "sign in first"},
	{errorvalues.ErrInvalidToken, http.StatusUnauthorized, "authorization failed: invalid token"},
	{errorvalues.ErrSessionNotFound, http.StatusUnauthorized, "auth failed: unknown device"},
	{errorvalues.ErrEmptyRefinement, http.StatusUnprocessableEntity, "refinement needs feedback or adjustments"},
	{errorvalues.ErrWrongMode, http.StatusConflict, "operation not allowed in current mode"},
	{errorvalues.ErrModeGuard, http.StatusConflict, "mode requires data that is absent"},
	{errorvalues.ErrWrongStep, http.StatusConflict, "operation not allowed on current step"},
	{errorvalues.ErrFirstStep, http.StatusConflict, "already on the first step"},
	{errorvalues.ErrLastStep, http.StatusConflict, "already on the last step"},
	{errorvalues.ErrNoHierarchy, http.StatusConflict, "no plan generated yet"},
	{errorvalues.ErrStaleResult, http.StatusConflict, "result superseded by a newer request"},
	{errorvalues.ErrNoAction, http.StatusConflict, "no daily action loaded"},
	{errorvalues.ErrActionCompleted, http.StatusConflict, "daily action already completed"},
	{errorvalues.ErrTimerNotRunning, http.StatusConflict, "focus timer is not running"},
	{errorvalues.ErrConfirmationMismatch, http.StatusBadRequest, "confirmation phrase doesn't match"},
	{errorvalues.ErrGenerationFailed, http.StatusBadGateway, "content generation failed, try again"},
	{errorvalues.ErrStoreUnavailable, http.StatusServiceUnavailable, "storage unavailable"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "operation timed out"},
}

// writeServiceError maps a service error onto the response. Unknown errors become 500.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var verr *errorvalues.ValidationError
	if errors.As(err, &verr) {
		logger.Error(op+" error: validation", slog.String("error", err.Error()))
		httputil.WriteFieldErrorResponse(w, http.StatusUnprocessableEntity, "validation failed", verr.Fields)
		return
	}
	for _, rule := range statusRules {
		if errors.Is(err, rule.target) {
			logger.Error(op+" error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, rule.status, rule.message, nil)
			return
		}
	}
	logger.Error(op+" error: service error", slog.String("error", err.Error()))
	httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during "+op, nil)
}
