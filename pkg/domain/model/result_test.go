package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
)

func TestResultConstructors(t *testing.T) {
	t.Run("valid marks request attempted", func(t *testing.T) {
		r := model.Valid(types.ServiceGitHub, "authenticated as octocat")
		gt.Equal(t, types.StatusValid, r.Status)
		gt.True(t, r.Attempted)
		gt.False(t, r.Failed())
	})

	t.Run("invalid marks request attempted", func(t *testing.T) {
		r := model.Invalid(types.ServiceJira, "HTTP 500")
		gt.Equal(t, types.StatusInvalid, r.Status)
		gt.True(t, r.Attempted)
		gt.True(t, r.Failed())
	})

	t.Run("misconfigured does not mark request attempted", func(t *testing.T) {
		r := model.Misconfigured(types.ServiceJira, "missing JIRA_URL")
		gt.Equal(t, types.StatusMisconfigured, r.Status)
		gt.False(t, r.Attempted)
		gt.True(t, r.Failed())
	})
}

func TestResultWithMethodsReturnCopies(t *testing.T) {
	base := model.Valid(types.ServiceGitHub, "ok").WithScopes([]string{"repo"})
	withFinding := base.WithFinding(model.Finding{
		Status: types.StatusRestricted,
		Detail: "organization not visible",
	})

	gt.Equal(t, 0, len(base.Findings))
	gt.Equal(t, 1, len(withFinding.Findings))
	gt.False(t, base.IsRestricted())
	gt.True(t, withFinding.IsRestricted())

	scopes := []string{"repo", "read:org"}
	r := base.WithScopes(scopes)
	scopes[0] = "changed"
	gt.Equal(t, "repo", r.Scopes[0])
}

func TestSummarize(t *testing.T) {
	results := []model.Result{
		model.Valid(types.ServiceGitHub, "").WithFinding(model.Finding{Status: types.StatusRestricted}),
		model.Valid(types.ServiceSlackBot, ""),
		model.Invalid(types.ServiceSlackApp, "invalid_auth"),
		model.Misconfigured(types.ServiceJira, "missing"),
	}

	s := model.Summarize(results)
	gt.Equal(t, 4, s.Total)
	gt.Equal(t, 2, s.Valid)
	gt.Equal(t, 1, s.Invalid)
	gt.Equal(t, 1, s.Misconfigured)
	gt.Equal(t, 1, s.ValidRestricted)
	gt.Equal(t, 0, s.Restricted)
	gt.Equal(t, s.Total, s.Valid+s.Invalid+s.Misconfigured+s.Restricted)
}
