package slack_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	slackSvc "github.com/openMF/credcheck/pkg/service/slack"
	"github.com/slack-go/slack"
)

func TestErrorCode(t *testing.T) {
	t.Run("slack error response", func(t *testing.T) {
		err := goerr.Wrap(slack.SlackErrorResponse{Err: "invalid_auth"}, "failed to call auth.test")
		gt.Equal(t, "invalid_auth", slackSvc.ErrorCode(err))
	})

	t.Run("plain error", func(t *testing.T) {
		gt.Equal(t, "boom", slackSvc.ErrorCode(errors.New("boom")))
	})
}

func TestClientOptions(t *testing.T) {
	gt.Equal(t, 0, len(slackSvc.ClientOptions("", nil)))
	gt.Equal(t, 2, len(slackSvc.ClientOptions("http://localhost/api", &http.Client{})))
}
