package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casavidal/ferreteria-api/internal/application/catalog"
	"github.com/casavidal/ferreteria-api/internal/application/dto"
	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/infrastructure/memory"
)

type clientFixture struct {
	uc    *catalog.ClientUseCase
	store *memory.Store
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()
	store := memory.NewStore()
	uc := catalog.NewClientUseCase(store.Clients(), store.Scorings(), store)
	return &clientFixture{uc: uc, store: store}
}

func naturalClient() dto.CreateClientRequest {
	return dto.CreateClientRequest{
		ClientType: entity.ClientTypeNatural,
		FirstName:  "María",
		LastName:   "González",
		Document:   "V-12345678",
		Phone:      "0414-1234567",
		City:       "Maracaibo",
		State:      "Zulia",
	}
}

func TestClientCreate_NaturalConScoringInicial(t *testing.T) {
	f := newClientFixture(t)

	resp, err := f.uc.Create(context.Background(), naturalClient())
	require.NoError(t, err)
	assert.Equal(t, entity.ClientCategoryNuevo, resp.Category)
	assert.Equal(t, "V12345678", resp.Document, "los guiones se eliminan")
	assert.True(t, resp.IsActive)

	// Cliente y scoring nacen juntos: NUEVO arranca con 50 / churn 80.
	require.NotNil(t, resp.Scoring)
	assert.Equal(t, 50.0, resp.Scoring.Score)
	assert.Equal(t, 80.0, resp.Scoring.ChurnProbability)
}

func TestClientCreate_DocumentoDesdePartes(t *testing.T) {
	f := newClientFixture(t)

	in := naturalClient()
	in.Document = ""
	in.DocPrefix = "V"
	in.DocNumber = "9876543"
	in.DocCheck = "1"
	resp, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "V98765431", resp.Document)
}

func TestClientCreate_JuridicoRequiereRazonSocial(t *testing.T) {
	f := newClientFixture(t)

	in := dto.CreateClientRequest{
		ClientType: entity.ClientTypeJuridico,
		RIF:        "J-12345678-9",
	}
	_, err := f.uc.Create(context.Background(), in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "companyName", verr.Field)

	in.CompanyName = "Construcciones Lago C.A."
	resp, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Construcciones Lago C.A.", resp.CompanyName)
}

func TestClientCreate_NaturalRequiereNombreYApellido(t *testing.T) {
	f := newClientFixture(t)

	in := naturalClient()
	in.FirstName = ""
	_, err := f.uc.Create(context.Background(), in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "firstName", verr.Field)

	in = naturalClient()
	in.LastName = ""
	_, err = f.uc.Create(context.Background(), in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lastName", verr.Field)
}

func TestClientCreate_TipoInvalido(t *testing.T) {
	f := newClientFixture(t)

	in := naturalClient()
	in.ClientType = "GOBIERNO"
	_, err := f.uc.Create(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientCreate_DocumentoDuplicado(t *testing.T) {
	f := newClientFixture(t)

	_, err := f.uc.Create(context.Background(), naturalClient())
	require.NoError(t, err)

	dup := naturalClient()
	dup.FirstName = "Pedro"
	_, err = f.uc.Create(context.Background(), dup)
	var derr *domain.DuplicateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "document", derr.Field)
}

func TestClientCreate_DocumentoDuplicadoIncluyeInactivos(t *testing.T) {
	f := newClientFixture(t)

	created, err := f.uc.Create(context.Background(), naturalClient())
	require.NoError(t, err)
	require.NoError(t, f.uc.SoftDelete(created.ID))

	dup := naturalClient()
	_, err = f.uc.Create(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrDuplicate, "la unicidad cubre clientes inactivos")
}

func TestClientCreate_RIFDuplicado(t *testing.T) {
	f := newClientFixture(t)

	first := dto.CreateClientRequest{
		ClientType:  entity.ClientTypeJuridico,
		CompanyName: "Ferretería El Tornillo C.A.",
		RIF:         "J-98765432-1",
	}
	_, err := f.uc.Create(context.Background(), first)
	require.NoError(t, err)

	second := dto.CreateClientRequest{
		ClientType:  entity.ClientTypeJuridico,
		CompanyName: "Otra Empresa C.A.",
		RIF:         "J-98765432-1",
	}
	_, err = f.uc.Create(context.Background(), second)
	var derr *domain.DuplicateError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "rif", derr.Field)
}

func TestClientCreate_SemillasPorCategoria(t *testing.T) {
	f := newClientFixture(t)

	cases := []struct {
		category string
		score    float64
		churn    float64
	}{
		{entity.ClientCategoryVIP, 90, 20},
		{entity.ClientCategoryRegular, 65, 20},
		{entity.ClientCategoryMayorista, 50, 20},
		{entity.ClientCategoryNuevo, 50, 80},
	}
	for i, tc := range cases {
		in := naturalClient()
		in.Document = ""
		in.DocPrefix = "V"
		in.DocNumber = "1000000" + string(rune('0'+i))
		in.Category = tc.category
		resp, err := f.uc.Create(context.Background(), in)
		require.NoError(t, err, tc.category)
		require.NotNil(t, resp.Scoring)
		assert.Equal(t, tc.score, resp.Scoring.Score, tc.category)
		assert.Equal(t, tc.churn, resp.Scoring.ChurnProbability, tc.category)
	}
}

func TestClientUpdate_DocumentoDuplicadoExcluyeSelf(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	a, err := f.uc.Create(ctx, naturalClient())
	require.NoError(t, err)

	other := naturalClient()
	other.Document = "V-87654321"
	b, err := f.uc.Create(ctx, other)
	require.NoError(t, err)

	// Reafirmar su propio documento no colisiona.
	own := "V-12345678"
	_, err = f.uc.Update(a.ID, dto.UpdateClientRequest{Document: &own})
	require.NoError(t, err)

	// Tomar el del otro sí.
	taken := "V12345678"
	_, err = f.uc.Update(b.ID, dto.UpdateClientRequest{Document: &taken})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClientUpdate_CategoriaNoTocaScoring(t *testing.T) {
	f := newClientFixture(t)

	created, err := f.uc.Create(context.Background(), naturalClient())
	require.NoError(t, err)
	require.Equal(t, 50.0, created.Scoring.Score)

	vip := entity.ClientCategoryVIP
	updated, err := f.uc.Update(created.ID, dto.UpdateClientRequest{Category: &vip})
	require.NoError(t, err)
	assert.Equal(t, entity.ClientCategoryVIP, updated.Category)
	// La semilla se fija al crear: cambiar de categoría no re-siembra el score.
	assert.Equal(t, 50.0, updated.Scoring.Score)
}

func TestClientSoftDelete_ConservaScoring(t *testing.T) {
	f := newClientFixture(t)

	created, err := f.uc.Create(context.Background(), naturalClient())
	require.NoError(t, err)
	require.NoError(t, f.uc.SoftDelete(created.ID))

	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.NotNil(t, got.Scoring)
}

func TestClientAddLoyaltyPoints(t *testing.T) {
	f := newClientFixture(t)

	created, err := f.uc.Create(context.Background(), naturalClient())
	require.NoError(t, err)

	got, err := f.uc.AddLoyaltyPoints(created.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, got.LoyaltyPoints)

	got, err = f.uc.AddLoyaltyPoints(created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 35, got.LoyaltyPoints)
}

func TestClientListChurnRisk(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	// NUEVO arranca con churn 80 (sobre el umbral 70); VIP con 20.
	nuevo := naturalClient()
	_, err := f.uc.Create(ctx, nuevo)
	require.NoError(t, err)

	vip := naturalClient()
	vip.Document = "V-22222222"
	vip.Category = entity.ClientCategoryVIP
	_, err = f.uc.Create(ctx, vip)
	require.NoError(t, err)

	atRisk, err := f.uc.ListChurnRisk(0)
	require.NoError(t, err)
	require.Len(t, atRisk, 1)
	assert.Equal(t, entity.ClientCategoryNuevo, atRisk[0].Category)
	assert.Equal(t, 80.0, atRisk[0].Scoring.ChurnProbability)
}

func TestClientListTopScoring(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	nuevo := naturalClient()
	_, err := f.uc.Create(ctx, nuevo)
	require.NoError(t, err)

	vip := naturalClient()
	vip.Document = "V-22222222"
	vip.Category = entity.ClientCategoryVIP
	_, err = f.uc.Create(ctx, vip)
	require.NoError(t, err)

	top, err := f.uc.ListTopScoring(1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, entity.ClientCategoryVIP, top[0].Category)
	assert.Equal(t, 90.0, top[0].Scoring.Score)
}

func TestClientList_BusquedaSinAcentos(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, naturalClient()) // María González
	require.NoError(t, err)

	other := naturalClient()
	other.Document = "V-33333333"
	other.FirstName = "Pedro"
	other.LastName = "Pérez"
	_, err = f.uc.Create(ctx, other)
	require.NoError(t, err)

	resp, err := f.uc.List(dto.ClientFilterRequest{Search: "gonzalez"})
	require.NoError(t, err)
	require.Len(t, resp.Clients, 1)
	assert.Equal(t, "González", resp.Clients[0].LastName)
}

func TestClientStats(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, naturalClient()) // NUEVO
	require.NoError(t, err)

	vip := naturalClient()
	vip.Document = "V-22222222"
	vip.Category = entity.ClientCategoryVIP
	created, err := f.uc.Create(ctx, vip)
	require.NoError(t, err)

	// Simular compras acumuladas directamente en el adaptador.
	stored, err := f.store.Clients().GetByID(created.ID)
	require.NoError(t, err)
	stored.TotalPurchases = decimal.NewFromInt(15000)
	stored.PurchaseCount = 25
	now := time.Now()
	stored.LastPurchaseAt = &now
	require.NoError(t, f.store.Clients().Update(stored))

	st, err := f.uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Nuevos)
	assert.Equal(t, 1, st.VIP)
	assert.True(t, st.TotalVentas.Equal(decimal.NewFromInt(15000)))
}
