package catalog

import (
	"context"

	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

// ClientTxRunner ejecuta fn de forma atómica para los lectores: un cliente y
// su registro de scoring se crean juntos o no se crea ninguno. Nadie debe
// poder observar un cliente sin scoring.
type ClientTxRunner interface {
	RunClient(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		scoringRepo repository.ClientScoringRepository,
	) error) error
}
