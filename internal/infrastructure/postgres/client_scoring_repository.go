package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

var _ repository.ClientScoringRepository = (*ClientScoringRepo)(nil)

// ClientScoringRepo implementación del registro de scoring sobre PostgreSQL.
// client_id lleva constraint única: un scoring por cliente.
type ClientScoringRepo struct {
	q Querier
}

// NewClientScoringRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientScoringRepository(q Querier) *ClientScoringRepo {
	return &ClientScoringRepo{q: q}
}

// Create inserta el registro de scoring de un cliente.
func (r *ClientScoringRepo) Create(s *entity.ClientScoring) error {
	query := `
		INSERT INTO client_scorings (id, client_id, score, purchase_frequency,
			average_ticket, lifetime_value, churn_probability, recommended_products, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ClientID, s.Score, s.PurchaseFrequency,
		s.AverageTicket, s.LifetimeValue, s.ChurnProbability, s.RecommendedProducts, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err, s.ClientID)
		}
		return fmt.Errorf("insert scoring: %w", err)
	}
	return nil
}

// GetByClient obtiene el scoring de un cliente; nil si no existe.
func (r *ClientScoringRepo) GetByClient(clientID string) (*entity.ClientScoring, error) {
	query := `
		SELECT id, client_id, score, purchase_frequency, average_ticket,
		       lifetime_value, churn_probability, COALESCE(recommended_products, '{}'), updated_at
		FROM client_scorings WHERE client_id = $1`
	var s entity.ClientScoring
	err := r.q.QueryRow(context.Background(), query, clientID).Scan(
		&s.ID, &s.ClientID, &s.Score, &s.PurchaseFrequency, &s.AverageTicket,
		&s.LifetimeValue, &s.ChurnProbability, &s.RecommendedProducts, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get scoring: %w", err)
	}
	return &s, nil
}

// Update persiste las métricas recalculadas.
func (r *ClientScoringRepo) Update(s *entity.ClientScoring) error {
	query := `
		UPDATE client_scorings SET score = $2, purchase_frequency = $3, average_ticket = $4,
			lifetime_value = $5, churn_probability = $6, recommended_products = $7, updated_at = $8
		WHERE client_id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		s.ClientID, s.Score, s.PurchaseFrequency, s.AverageTicket,
		s.LifetimeValue, s.ChurnProbability, s.RecommendedProducts, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update scoring: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
