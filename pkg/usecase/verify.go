package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openMF/credcheck/pkg/domain/interfaces"
	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
	"github.com/openMF/credcheck/pkg/utils/async"
)

// Verify runs registered checkers. VerifyAll runs one check at a time unless
// WithConcurrency raises the limit.
type Verify struct {
	checkers map[types.ServiceName]interfaces.Checker
	order    []types.ServiceName
	limit    int
}

// VerifyOption configures Verify
type VerifyOption func(*Verify)

// WithConcurrency caps how many checks VerifyAll runs at once
func WithConcurrency(limit int) VerifyOption {
	return func(v *Verify) {
		v.limit = limit
	}
}

// NewVerify creates a new Verify use case. A later checker for the same
// service replaces an earlier one.
func NewVerify(checkers []interfaces.Checker, opts ...VerifyOption) VerifyUseCase {
	v := &Verify{
		checkers: make(map[types.ServiceName]interfaces.Checker, len(checkers)),
		limit:    1,
	}
	for _, c := range checkers {
		if _, exists := v.checkers[c.Service()]; !exists {
			v.order = append(v.order, c.Service())
		}
		v.checkers[c.Service()] = c
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Services implements VerifyUseCase
func (v *Verify) Services() []types.ServiceName {
	return append([]types.ServiceName(nil), v.order...)
}

// Verify implements VerifyUseCase. The only error is an unregistered service;
// verification failures are reported in the Result.
func (v *Verify) Verify(ctx context.Context, service types.ServiceName, creds model.CredentialSet) (model.Result, error) {
	checker, ok := v.checkers[service]
	if !ok {
		return model.Result{}, goerr.Wrap(model.ErrUnknownService, "cannot verify service",
			goerr.V("service", service))
	}

	result := async.Run(ctx, bind(checker, creds), func(r any) model.Result {
		return panicResult(service, r)
	})
	logResult(ctx, result)
	return result, nil
}

// VerifyAll implements VerifyUseCase
func (v *Verify) VerifyAll(ctx context.Context, creds model.CredentialSet) []model.Result {
	tasks := make([]async.Task[model.Result], len(v.order))
	for i, service := range v.order {
		tasks[i] = bind(v.checkers[service], creds)
	}

	results := async.Collect(ctx, v.limit, tasks, func(i int, r any) model.Result {
		return panicResult(v.order[i], r)
	})
	for _, r := range results {
		logResult(ctx, r)
	}
	return results
}

func bind(checker interfaces.Checker, creds model.CredentialSet) async.Task[model.Result] {
	return func(ctx context.Context) model.Result {
		return checker.Check(ctx, creds)
	}
}

func panicResult(service types.ServiceName, r any) model.Result {
	return model.Invalid(service, fmt.Sprintf("check aborted: %v", r))
}

func logResult(ctx context.Context, result model.Result) {
	ctxlog.From(ctx).Debug("Verification finished", "result", result)
}
