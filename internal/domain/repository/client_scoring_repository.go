package repository

import "github.com/casavidal/ferreteria-api/internal/domain/entity"

// ClientScoringRepository define el puerto para el registro de scoring (1 a 1 con Client).
// Solo el motor de scoring muta estos registros.
type ClientScoringRepository interface {
	Create(s *entity.ClientScoring) error
	GetByClient(clientID string) (*entity.ClientScoring, error)
	Update(s *entity.ClientScoring) error
}
