package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
	"github.com/casavidal/ferreteria-api/internal/domain/scoring"
)

// ChurnRiskThreshold umbral por defecto para la lista de clientes en riesgo.
const ChurnRiskThreshold = 70

// ClientUseCase supervisa el alta y mantenimiento de clientes: reglas por tipo
// (natural/jurídico), unicidad de cédula y RIF entre activos e inactivos, y la
// creación atómica del registro de scoring junto al cliente.
type ClientUseCase struct {
	clientRepo  repository.ClientRepository
	scoringRepo repository.ClientScoringRepository
	txRunner    ClientTxRunner
}

// NewClientUseCase construye el supervisor de clientes.
func NewClientUseCase(
	clientRepo repository.ClientRepository,
	scoringRepo repository.ClientScoringRepository,
	txRunner ClientTxRunner,
) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, scoringRepo: scoringRepo, txRunner: txRunner}
}

// buildDocument arma la cédula desde sus partes (prefijo + número + dígito)
// eliminando guiones. Las partes tienen prioridad sobre el documento armado.
func buildDocument(document, prefix, number, check string) string {
	if number != "" && prefix != "" {
		document = prefix + number + check
	}
	return strings.ReplaceAll(document, "-", "")
}

// Create crea un cliente y su scoring inicial en la misma transacción.
// NATURAL exige nombre y apellido; JURIDICO exige razón social. Cédula y RIF
// se verifican contra todos los clientes, activos o no.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if !entity.ValidClientType(in.ClientType) {
		return nil, &domain.ValidationError{Field: "clientType", Reason: "debe ser NATURAL o JURIDICO"}
	}
	if in.ClientType == entity.ClientTypeNatural {
		if in.FirstName == "" {
			return nil, &domain.ValidationError{Field: "firstName", Reason: "nombre y apellido son requeridos para persona natural"}
		}
		if in.LastName == "" {
			return nil, &domain.ValidationError{Field: "lastName", Reason: "nombre y apellido son requeridos para persona natural"}
		}
	}
	if in.ClientType == entity.ClientTypeJuridico && in.CompanyName == "" {
		return nil, &domain.ValidationError{Field: "companyName", Reason: "razón social requerida para persona jurídica"}
	}

	category := in.Category
	if category == "" {
		category = entity.ClientCategoryNuevo
	}
	if !entity.ValidClientCategory(category) {
		return nil, &domain.ValidationError{Field: "category", Reason: "categoría desconocida: " + category}
	}

	document := buildDocument(in.Document, in.DocPrefix, in.DocNumber, in.DocCheck)

	// Pre-chequeos de unicidad; la constraint del storage es la autoridad final.
	if document != "" {
		existing, err := uc.clientRepo.GetByDocument(document)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &domain.DuplicateError{Field: "document", Value: document}
		}
	}
	if in.RIF != "" {
		existing, err := uc.clientRepo.GetByRIF(in.RIF)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &domain.DuplicateError{Field: "rif", Value: in.RIF}
		}
	}

	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		ClientType:  in.ClientType,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		CompanyName: in.CompanyName,
		Document:    document,
		RIF:         in.RIF,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Category:    category,
		Notes:       in.Notes,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	sc := scoring.NewInitial(client)

	// Cliente y scoring nacen juntos o no nace ninguno.
	err := uc.txRunner.RunClient(ctx, func(
		clientRepo repository.ClientRepository,
		scoringRepo repository.ClientScoringRepository,
	) error {
		if err := clientRepo.Create(client); err != nil {
			return err
		}
		return scoringRepo.Create(sc)
	})
	if err != nil {
		return nil, err
	}
	return toClientResponse(client, sc), nil
}

// GetByID obtiene un cliente con su scoring.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	sc, err := uc.scoringRepo.GetByClient(id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client, sc), nil
}

// List lista clientes con filtros y paginación, incluyendo scoring.
func (uc *ClientUseCase) List(in dto.ClientFilterRequest) (*dto.ClientListResponse, error) {
	in.DefaultPage()
	clients, total, err := uc.clientRepo.List(repository.ClientFilter{
		Search:     in.Search,
		Category:   in.Category,
		ClientType: in.ClientType,
		IsActive:   in.IsActive,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out, err := uc.withScoring(clients)
	if err != nil {
		return nil, err
	}
	return &dto.ClientListResponse{
		Clients:    out,
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// Update actualiza un cliente re-validando cédula y RIF contra los demás
// registros (exclusión de sí mismo). Nunca toca el scoring.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	if in.Document != nil || (in.DocNumber != nil && in.DocPrefix != nil) {
		document := client.Document
		if in.Document != nil {
			document = *in.Document
		}
		prefix, number, check := "", "", ""
		if in.DocPrefix != nil {
			prefix = *in.DocPrefix
		}
		if in.DocNumber != nil {
			number = *in.DocNumber
		}
		if in.DocCheck != nil {
			check = *in.DocCheck
		}
		document = buildDocument(document, prefix, number, check)
		if document != "" && document != client.Document {
			existing, err := uc.clientRepo.GetByDocument(document)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, &domain.DuplicateError{Field: "document", Value: document}
			}
		}
		client.Document = document
	}
	if in.RIF != nil && *in.RIF != "" && *in.RIF != client.RIF {
		existing, err := uc.clientRepo.GetByRIF(*in.RIF)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, &domain.DuplicateError{Field: "rif", Value: *in.RIF}
		}
		client.RIF = *in.RIF
	}
	if in.Category != nil {
		if !entity.ValidClientCategory(*in.Category) {
			return nil, &domain.ValidationError{Field: "category", Reason: "categoría desconocida: " + *in.Category}
		}
		client.Category = *in.Category
	}

	if in.FirstName != nil {
		client.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		client.LastName = *in.LastName
	}
	if in.CompanyName != nil {
		client.CompanyName = *in.CompanyName
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.City != nil {
		client.City = *in.City
	}
	if in.State != nil {
		client.State = *in.State
	}
	if in.Notes != nil {
		client.Notes = *in.Notes
	}
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}
	client.UpdatedAt = time.Now()

	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	sc, err := uc.scoringRepo.GetByClient(id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client, sc), nil
}

// SoftDelete desactiva el cliente; su scoring y su historial se conservan.
func (uc *ClientUseCase) SoftDelete(id string) error {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.clientRepo.SetActive(id, false)
}

// AddLoyaltyPoints incrementa los puntos de lealtad de forma atómica.
func (uc *ClientUseCase) AddLoyaltyPoints(id string, points int) (*dto.ClientResponse, error) {
	if err := uc.clientRepo.AddLoyaltyPoints(id, points); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// ListVIP clientes VIP activos ordenados por compras totales.
func (uc *ClientUseCase) ListVIP() ([]*dto.ClientResponse, error) {
	clients, err := uc.clientRepo.ListVIP(20)
	if err != nil {
		return nil, err
	}
	return uc.withScoring(clients)
}

// ListTopScoring clientes activos con mayor score.
func (uc *ClientUseCase) ListTopScoring(limit int) ([]*dto.ClientResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	clients, err := uc.clientRepo.ListTopScoring(limit)
	if err != nil {
		return nil, err
	}
	return uc.withScoring(clients)
}

// ListChurnRisk clientes activos con churnProbability >= threshold
// (por defecto 70), de mayor a menor riesgo.
func (uc *ClientUseCase) ListChurnRisk(threshold float64) ([]*dto.ClientResponse, error) {
	if threshold <= 0 {
		threshold = ChurnRiskThreshold
	}
	clients, err := uc.clientRepo.ListChurnRisk(threshold)
	if err != nil {
		return nil, err
	}
	return uc.withScoring(clients)
}

// Stats agregados de clientes para el dashboard.
func (uc *ClientUseCase) Stats() (*dto.ClientStatsResponse, error) {
	st, err := uc.clientRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.ClientStatsResponse{
		Total:       st.Total,
		Nuevos:      st.Nuevos,
		VIP:         st.VIP,
		Mayoristas:  st.Mayoristas,
		Inactivos:   st.Inactivos,
		TotalVentas: st.TotalVentas,
	}, nil
}

func (uc *ClientUseCase) withScoring(clients []*entity.Client) ([]*dto.ClientResponse, error) {
	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		sc, err := uc.scoringRepo.GetByClient(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toClientResponse(c, sc))
	}
	return out, nil
}

func toClientResponse(c *entity.Client, sc *entity.ClientScoring) *dto.ClientResponse {
	resp := &dto.ClientResponse{
		ID:             c.ID,
		ClientType:     c.ClientType,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		CompanyName:    c.CompanyName,
		Document:       c.Document,
		RIF:            c.RIF,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		State:          c.State,
		Category:       c.Category,
		Notes:          c.Notes,
		LoyaltyPoints:  c.LoyaltyPoints,
		TotalPurchases: c.TotalPurchases,
		PurchaseCount:  c.PurchaseCount,
		LastPurchaseAt: c.LastPurchaseAt,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
	if sc != nil {
		resp.Scoring = &dto.ScoringResponse{
			Score:               sc.Score,
			PurchaseFrequency:   sc.PurchaseFrequency,
			AverageTicket:       sc.AverageTicket,
			LifetimeValue:       sc.LifetimeValue,
			ChurnProbability:    sc.ChurnProbability,
			RecommendedProducts: sc.RecommendedProducts,
		}
	}
	return resp
}
