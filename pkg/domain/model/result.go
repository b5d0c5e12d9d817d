package model

import (
	"log/slog"
	"slices"

	"github.com/openMF/credcheck/pkg/domain/types"
)

// Finding is a secondary observation attached to a Result, such as a
// restricted organization lookup on an otherwise valid token
type Finding struct {
	Status types.Status
	Detail string
	Hint   string
}

// Result is the outcome of verifying one service's credentials.
// Results are built with NewResult and the With* methods, each of which
// returns a modified copy; a Result is never changed after it is returned.
type Result struct {
	Service   types.ServiceName
	Status    types.Status
	Detail    string
	Hint      string
	Identity  string
	Workspace string
	Scopes    []string
	Findings  []Finding
	// Attempted is true once at least one outbound request was sent
	Attempted bool
}

// NewResult creates a new Result
func NewResult(service types.ServiceName, status types.Status, detail string) Result {
	return Result{
		Service: service,
		Status:  status,
		Detail:  detail,
	}
}

// Valid creates a Valid result
func Valid(service types.ServiceName, detail string) Result {
	return NewResult(service, types.StatusValid, detail).WithAttempted()
}

// Invalid creates an Invalid result for a request that was sent and rejected or errored
func Invalid(service types.ServiceName, detail string) Result {
	return NewResult(service, types.StatusInvalid, detail).WithAttempted()
}

// Misconfigured creates a Misconfigured result for input that is absent or malformed.
// No request is recorded as attempted.
func Misconfigured(service types.ServiceName, detail string) Result {
	return NewResult(service, types.StatusMisconfigured, detail)
}

// WithHint returns a copy with a remediation hint
func (r Result) WithHint(hint string) Result {
	r.Hint = hint
	return r
}

// WithIdentity returns a copy carrying the authenticated identity
func (r Result) WithIdentity(identity string) Result {
	r.Identity = identity
	return r
}

// WithWorkspace returns a copy carrying the workspace or organization name
func (r Result) WithWorkspace(workspace string) Result {
	r.Workspace = workspace
	return r
}

// WithScopes returns a copy carrying the granted scopes
func (r Result) WithScopes(scopes []string) Result {
	r.Scopes = slices.Clone(scopes)
	return r
}

// WithFinding returns a copy with an additional finding
func (r Result) WithFinding(f Finding) Result {
	r.Findings = append(slices.Clone(r.Findings), f)
	return r
}

// WithAttempted returns a copy marked as having sent a request
func (r Result) WithAttempted() Result {
	r.Attempted = true
	return r
}

// IsRestricted reports whether any finding flags restricted access
func (r Result) IsRestricted() bool {
	for _, f := range r.Findings {
		if f.Status == types.StatusRestricted {
			return true
		}
	}
	return false
}

// Failed reports whether the primary status is a failure
func (r Result) Failed() bool {
	return r.Status.IsFailure()
}

// LogValue returns structured log value
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("service", r.Service.String()),
		slog.String("status", r.Status.String()),
		slog.String("detail", r.Detail),
		slog.Bool("restricted", r.IsRestricted()),
		slog.Bool("attempted", r.Attempted),
	)
}

// Summary counts results per primary status. Valid, Invalid, Misconfigured
// and Restricted add up to Total; ValidRestricted is the subset of Valid
// results carrying a restricted finding.
type Summary struct {
	Total           int
	Valid           int
	ValidRestricted int
	Invalid         int
	Misconfigured   int
	Restricted      int
}

// Summarize counts results
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		switch r.Status {
		case types.StatusValid:
			s.Valid++
			if r.IsRestricted() {
				s.ValidRestricted++
			}
		case types.StatusInvalid:
			s.Invalid++
		case types.StatusMisconfigured:
			s.Misconfigured++
		case types.StatusRestricted:
			s.Restricted++
		}
	}
	return s
}
