// Seed idempotente: usuarios base, categorías del catálogo y clientes de
// ejemplo. Se puede re-ejecutar sin duplicar filas.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/casavidal/ferreteria-api/internal/application/catalog"
	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
	"github.com/casavidal/ferreteria-api/internal/infrastructure/postgres"
	"github.com/casavidal/ferreteria-api/pkg/config"
	"github.com/casavidal/ferreteria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	scoringRepo := postgres.NewClientScoringRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	clientUC := catalog.NewClientUseCase(clientRepo, scoringRepo, txRunner)

	seedUsers(log, userRepo)
	seedCategories(log, categoryRepo)
	seedClients(ctx, log, clientUC)

	log.Info().Msg("seed completado")
}

func seedUsers(log *logger.Logger, repo repository.UserRepository) {
	users := []struct {
		email, password, firstName, lastName, role string
	}{
		{"admin@casavidal.com", "admin12345", "Administrador", "Casa Vidal", entity.RoleAdmin},
		{"ventas@casavidal.com", "ventas12345", "Vendedor", "Mostrador", entity.RoleVendedor},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password de seed")
		}
		now := time.Now()
		user, err := repo.UpsertByEmail(&entity.User{
			ID:           uuid.New().String(),
			Email:        u.email,
			PasswordHash: string(hash),
			FirstName:    u.firstName,
			LastName:     u.lastName,
			Role:         u.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("seed usuario")
		}
		log.Info().Str("email", user.Email).Str("role", user.Role).Msg("usuario listo")
	}
}

func seedCategories(log *logger.Logger, repo repository.CategoryRepository) {
	categories := []struct{ name, icon string }{
		{"Pinturas", "paint-roller"},
		{"Herramientas", "wrench"},
		{"Ferretería", "bolt"},
		{"Electricidad", "plug"},
		{"Plomería", "droplet"},
	}
	for _, c := range categories {
		cat, err := repo.UpsertByName(c.name, c.icon)
		if err != nil {
			log.Fatal().Err(err).Str("name", c.name).Msg("seed categoría")
		}
		log.Info().Str("name", cat.Name).Msg("categoría lista")
	}
}

func seedClients(ctx context.Context, log *logger.Logger, uc *catalog.ClientUseCase) {
	clients := []dto.CreateClientRequest{
		{
			ClientType: entity.ClientTypeNatural,
			FirstName:  "María", LastName: "González",
			Document: "V-12345678",
			Phone:    "0414-1234567", City: "Maracaibo", State: "Zulia",
			Category: entity.ClientCategoryRegular,
		},
		{
			ClientType: entity.ClientTypeNatural,
			FirstName:  "Pedro", LastName: "Urdaneta",
			Document: "V-87654321",
			Phone:    "0424-7654321", City: "Maracaibo", State: "Zulia",
		},
		{
			ClientType:  entity.ClientTypeJuridico,
			CompanyName: "Construcciones Lago C.A.",
			RIF:         "J-30123456-7",
			Phone:       "0261-7001122", City: "Maracaibo", State: "Zulia",
			Category: entity.ClientCategoryMayorista,
		},
		{
			ClientType:  entity.ClientTypeJuridico,
			CompanyName: "Inversiones El Puente C.A.",
			RIF:         "J-40987654-3",
			Phone:       "0261-7554433", City: "Cabimas", State: "Zulia",
			Category: entity.ClientCategoryVIP,
		},
	}
	for _, in := range clients {
		resp, err := uc.Create(ctx, in)
		if err != nil {
			// Re-ejecución del seed: el cliente ya existe, no es un fallo.
			if errors.Is(err, domain.ErrDuplicate) {
				log.Info().Str("document", in.Document).Str("rif", in.RIF).Msg("cliente ya existía")
				continue
			}
			log.Fatal().Err(err).Msg("seed cliente")
		}
		log.Info().Str("id", resp.ID).Str("category", resp.Category).Msg("cliente listo")
	}
}
