package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/openMF/credcheck/pkg/domain/model"
)

// Handle logs a command error. Preflight failures are already reported on
// stdout, so they are logged as warnings.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	if errors.Is(err, model.ErrPreflightFailed) {
		logger.Warn("preflight failed", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
