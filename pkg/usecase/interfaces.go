package usecase

import (
	"context"

	"github.com/openMF/credcheck/pkg/domain/model"
	"github.com/openMF/credcheck/pkg/domain/types"
)

// VerifyUseCase defines the interface for credential verification
type VerifyUseCase interface {
	// Verify runs the check for one service
	Verify(ctx context.Context, service types.ServiceName, creds model.CredentialSet) (model.Result, error)

	// VerifyAll runs every registered check and returns results in registration order
	VerifyAll(ctx context.Context, creds model.CredentialSet) []model.Result

	// Services lists the registered services in registration order
	Services() []types.ServiceName
}
