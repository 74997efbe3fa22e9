package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/casavidal/ferreteria-api/internal/domain"
)

// uniqueFieldByConstraint mapea el nombre de la constraint única al campo de
// negocio que colisionó, para que la API reporte "sku" y no "products_sku_key".
var uniqueFieldByConstraint = map[string]string{
	"products_sku_key":              "sku",
	"products_barcode_key":          "barcode",
	"clients_document_key":          "document",
	"clients_rif_key":               "rif",
	"client_scorings_client_id_key": "clientId",
	"categories_name_key":           "name",
	"users_email_key":               "email",
}

// mapUniqueViolation convierte una violación 23505 en un DuplicateError con el
// campo de negocio; cualquier otro error se devuelve tal cual.
func mapUniqueViolation(err error, value string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		field := uniqueFieldByConstraint[pgErr.ConstraintName]
		if field == "" {
			field = pgErr.ConstraintName
		}
		return &domain.DuplicateError{Field: field, Value: value}
	}
	return err
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}
