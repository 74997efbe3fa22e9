// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en tests y como modo de desarrollo sin PostgreSQL.
//
// La sección exclusiva por producto del motor de movimientos se implementa
// con un mutex por productID (ajustes sobre productos distintos corren en
// paralelo); la creación cliente+scoring se serializa con un mutex propio.
// No hay rollback: los callbacks validan antes de escribir y las escrituras
// en memoria no fallan.
package memory

import (
	"context"
	"sync"

	"github.com/casavidal/ferreteria-api/internal/application/catalog"
	"github.com/casavidal/ferreteria-api/internal/application/inventory"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

// Ensure Store implements the transactional ports.
var _ inventory.TxRunner = (*Store)(nil)
var _ catalog.ClientTxRunner = (*Store)(nil)

// Store contenedor de todos los datos en memoria.
type Store struct {
	mu sync.RWMutex

	products   map[string]*entity.Product
	movements  map[string][]*entity.InventoryMovement // por producto, en orden de creación
	clients    map[string]*entity.Client
	scorings   map[string]*entity.ClientScoring // por clientID
	categories map[string]*entity.Category
	users      map[string]*entity.User

	productLocks sync.Map   // productID -> *sync.Mutex
	clientMu     sync.Mutex // serializa creación cliente+scoring
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]*entity.Product),
		movements:  make(map[string][]*entity.InventoryMovement),
		clients:    make(map[string]*entity.Client),
		scorings:   make(map[string]*entity.ClientScoring),
		categories: make(map[string]*entity.Category),
		users:      make(map[string]*entity.User),
	}
}

// Products devuelve el adaptador de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Movements devuelve el adaptador del libro de movimientos.
func (s *Store) Movements() repository.InventoryMovementRepository { return &movementRepo{s: s} }

// Clients devuelve el adaptador de clientes.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{s: s} }

// Scorings devuelve el adaptador de scoring.
func (s *Store) Scorings() repository.ClientScoringRepository { return &scoringRepo{s: s} }

// Categories devuelve el adaptador de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s: s} }

// Users devuelve el adaptador de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// lockFor devuelve (creándolo si no existe) el mutex del producto.
func (s *Store) lockFor(productID string) *sync.Mutex {
	v, _ := s.productLocks.LoadOrStore(productID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Run ejecuta fn dentro de la sección exclusiva del producto.
func (s *Store) Run(ctx context.Context, productID string, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := s.lockFor(productID)
	l.Lock()
	defer l.Unlock()
	return fn(&productRepo{s: s}, &movementRepo{s: s})
}

// RunClient ejecuta fn serializado contra otras creaciones de clientes.
func (s *Store) RunClient(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	scoringRepo repository.ClientScoringRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.clientMu.Lock()
	defer s.clientMu.Unlock()
	return fn(&clientRepo{s: s}, &scoringRepo{s: s})
}
