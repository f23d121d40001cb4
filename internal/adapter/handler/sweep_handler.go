package handler

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/usecase/reconcile"
	"github.com/johnquangdev/meeting-notes/pkg/deadline"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

// SweepHandler triggers a reconciliation sweep over HTTP
type SweepHandler struct {
	sweeper reconcile.Sweepable
	logger  *zap.Logger
}

// NewSweepHandler creates a new handler. Signature checks are applied by the router.
func NewSweepHandler(sweeper reconcile.Sweepable, logger *zap.Logger) *SweepHandler {
	return &SweepHandler{sweeper: sweeper, logger: logger}
}

// TriggerSweep emails every complete record that has not been sent yet
// @Summary      Email unsent meeting summaries
// @Description  Runs one reconciliation sweep over one page of unsent records. When a sweep secret is configured the body must be signed.
// @Tags         Reconciliation
// @Produce      json
// @Param        X-Signature  header    string  false  "hex HMAC-SHA256 of the body"
// @Success      200          {object}  dto.SweepResponse
// @Failure      401          {object}  common.ErrorResponse
// @Failure      409          {object}  common.ErrorResponse  "Sweep already in progress"
// @Failure      500          {object}  common.ErrorResponse
// @Failure      504          {object}  common.ErrorResponse
// @Router       /api/email-notion-summary [post]
func (h *SweepHandler) TriggerSweep(c echo.Context) error {
	ctx := jobcontext.JobBegin(c.Request().Context(), jobcontext.JobTypeSweepHTTP)

	result, err := h.sweeper.Sweep(ctx)
	if err != nil {
		switch {
		case stdErrors.Is(err, entities.ErrSweepInProgress):
			return HandleError(h.logger, c, errors.ErrConflict(err.Error()))
		case deadline.IsTimeout(err), stdErrors.Is(err, context.DeadlineExceeded):
			return HandleError(h.logger, c, errors.ErrUpstreamTimeout("store.query_unsent", err))
		default:
			return HandleError(h.logger, c, errors.ErrStorageFailed("query unsent records", err))
		}
	}

	return HandleSuccess(h.logger, c, http.StatusOK, dto.NewSweepResponse(result))
}
