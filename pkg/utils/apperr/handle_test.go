package apperr_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/utils/apperr"
)

func TestHandle(t *testing.T) {
	newCtx := func(buf *bytes.Buffer) context.Context {
		logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		return ctxlog.With(context.Background(), logger)
	}

	t.Run("Preflight failure is a warning", func(t *testing.T) {
		var buf bytes.Buffer
		apperr.Handle(newCtx(&buf), goerr.Wrap(model.ErrPreflightFailed, "missing JIRA_URL"))
		gt.S(t, buf.String()).Contains("level=WARN")
		gt.S(t, buf.String()).Contains("preflight failed")
	})

	t.Run("Other errors are logged as errors", func(t *testing.T) {
		var buf bytes.Buffer
		apperr.Handle(newCtx(&buf), goerr.New("boom"))
		gt.S(t, buf.String()).Contains("level=ERROR")
		gt.S(t, buf.String()).Contains("application error")
	})
}
