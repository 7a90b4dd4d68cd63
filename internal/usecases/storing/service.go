// Package storing é o orquestrador do núcleo de dados: compõe os
// repositórios e a auditoria em operações de nível de negócio que preservam
// os invariantes entre coleções. Módulos de negócio e a API chamam apenas
// este serviço — nunca um repositório diretamente.
package storing

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/infrastructure/repository"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
	"github.com/rmaestri/shop-manager-api/internal/usecases/auditing"
)

// purger é o recorte de repositório usado pelo expurgo de tenant.
type purger interface {
	Name() string
	PurgeTenant(ctx context.Context, tenantID string) (int, error)
}

type Service struct {
	products          *repository.Repository[*domain.Product]
	clients           *repository.Repository[*domain.Client]
	sales             *repository.Repository[*domain.Sale]
	transactions      *repository.Repository[*domain.Transaction]
	users             *repository.Repository[*domain.User]
	categories        *repository.Repository[*domain.Category]
	locations         *repository.Repository[*domain.Location]
	physicalLocations *repository.Repository[*domain.PhysicalLocation]
	boxes             *repository.Repository[*domain.Box]
	brands            *repository.Repository[*domain.Brand]
	knowledge         *repository.Repository[*domain.Knowledge]
	warranties        *repository.Repository[*domain.Warranty]
	checklists        *repository.Repository[*domain.Checklist]
	settings          *repository.SettingsRepository
	sequences         *repository.SequenceRepository
	audit             auditing.Auditor
	matcher           Matcher
	purgers           []purger
}

func NewService(store collection.Store, audit auditing.Auditor) *Service {
	s := &Service{
		products:          repository.New[*domain.Product](store, "products"),
		clients:           repository.New[*domain.Client](store, "clients"),
		sales:             repository.New[*domain.Sale](store, "sales"),
		transactions:      repository.New[*domain.Transaction](store, "transactions"),
		users:             repository.New[*domain.User](store, "users"),
		categories:        repository.New[*domain.Category](store, "categories"),
		locations:         repository.New[*domain.Location](store, "locations"),
		physicalLocations: repository.New[*domain.PhysicalLocation](store, "physicalLocations"),
		boxes:             repository.New[*domain.Box](store, "boxes"),
		brands:            repository.New[*domain.Brand](store, "brands"),
		knowledge:         repository.New[*domain.Knowledge](store, "knowledge"),
		warranties:        repository.New[*domain.Warranty](store, "warranties"),
		checklists:        repository.New[*domain.Checklist](store, "checklists"),
		settings:          repository.NewSettingsRepository(store),
		sequences:         repository.NewSequenceRepository(store),
		audit:             audit,
		matcher:           LegacyHeuristic{},
	}

	// O expurgo de tenant varre todas as coleções escopadas. A trilha de
	// auditoria entra aqui também: o tenant apagado leva sua trilha junto.
	s.purgers = []purger{
		s.products, s.clients, s.sales, s.transactions, s.users,
		s.categories, s.locations, s.physicalLocations, s.boxes,
		s.brands, s.knowledge, s.warranties, s.checklists,
	}

	return s
}

// Users devolve o repositório de usuários para o serviço de autenticação.
// Nenhum outro colaborador deve acessar repositórios diretamente.
func (s *Service) Users() *repository.Repository[*domain.User] {
	return s.users
}

// --- Produtos ---

func (s *Service) GetProducts(ctx context.Context, tc tenant.Context) ([]*domain.Product, error) {
	return s.products.GetAll(ctx, tc, false)
}

func (s *Service) AddProduct(ctx context.Context, tc tenant.Context, product *domain.Product) (bool, error) {
	return s.products.Add(ctx, tc, product)
}

func (s *Service) UpdateProduct(ctx context.Context, tc tenant.Context, id domain.ID, patch domain.ProductPatch) (bool, error) {
	return s.products.Update(ctx, tc, id, func(p *domain.Product) {
		p.Apply(patch)
	})
}

func (s *Service) DeleteProduct(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.products.Delete(ctx, tc, id)
}

// --- Clientes ---

func (s *Service) GetClients(ctx context.Context, tc tenant.Context) ([]*domain.Client, error) {
	return s.clients.GetAll(ctx, tc, false)
}

// AddClient valida a unicidade do documento dentro do tenant antes de
// cadastrar. Documento duplicado levanta DuplicateDocumentError; falha de
// validação simples devolve false sem erro.
func (s *Service) AddClient(ctx context.Context, tc tenant.Context, client *domain.Client) (bool, error) {
	if client.Document != "" {
		existing, err := s.clients.GetAll(ctx, tc, false)
		if err != nil {
			return false, err
		}
		for _, c := range existing {
			if c.Document == client.Document {
				return false, &DuplicateDocumentError{Document: client.Document}
			}
		}
	}

	return s.clients.Add(ctx, tc, client)
}

func (s *Service) UpdateClient(ctx context.Context, tc tenant.Context, id domain.ID, patch domain.ClientPatch) (bool, error) {
	if patch.Document != nil && *patch.Document != "" {
		existing, err := s.clients.GetAll(ctx, tc, false)
		if err != nil {
			return false, err
		}
		for _, c := range existing {
			if c.ID != id && c.Document == *patch.Document {
				return false, &DuplicateDocumentError{Document: *patch.Document}
			}
		}
	}

	return s.clients.Update(ctx, tc, id, func(c *domain.Client) {
		c.Apply(patch)
	})
}

func (s *Service) DeleteClient(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.clients.Delete(ctx, tc, id)
}

// --- Lançamentos financeiros ---

func (s *Service) GetTransactions(ctx context.Context, tc tenant.Context) ([]*domain.Transaction, error) {
	return s.transactions.GetAll(ctx, tc, false)
}

func (s *Service) AddTransaction(ctx context.Context, tc tenant.Context, txn *domain.Transaction) (bool, error) {
	if txn.ID.IsZero() {
		txn.ID = newTransactionID()
	}
	if txn.Status == "" {
		txn.Status = domain.TransactionStatusOpen
	}
	return s.transactions.Add(ctx, tc, txn)
}

func (s *Service) UpdateTransaction(ctx context.Context, tc tenant.Context, id domain.ID, patch domain.TransactionPatch) (bool, error) {
	return s.transactions.Update(ctx, tc, id, func(t *domain.Transaction) {
		t.Apply(patch)
	})
}

func (s *Service) DeleteTransaction(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.transactions.Delete(ctx, tc, id)
}

// --- Usuários ---

func (s *Service) GetUsers(ctx context.Context, tc tenant.Context) ([]*domain.User, error) {
	users, err := s.users.GetAll(ctx, tc, false)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// GetGlobalUsers é a consulta global de usuários, exclusiva do master.
func (s *Service) GetGlobalUsers(ctx context.Context, tc tenant.Context) ([]*domain.User, error) {
	users, err := s.users.GetAll(ctx, tc, true)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// AddUser cadastra o usuário com a senha já transformada em hash bcrypt. O
// campo PasswordHash chega com a senha em claro do formulário de cadastro.
// O email é a chave de login e é único entre todos os tenants; duplicado
// levanta DuplicateEmailError.
func (s *Service) AddUser(ctx context.Context, tc tenant.Context, user *domain.User) (bool, error) {
	if user.Email != "" {
		existing, err := s.users.GetAll(ctx, tenant.System(""), true)
		if err != nil {
			return false, err
		}
		for _, u := range existing {
			if normalizeEmail(u.Email) == normalizeEmail(user.Email) {
				return false, &DuplicateEmailError{Email: user.Email}
			}
		}
	}

	if user.PasswordHash != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		user.PasswordHash = string(hashed)
	}

	if user.Role == "" {
		user.Role = domain.RoleSeller
	}

	return s.users.Add(ctx, tc, user)
}

func (s *Service) UpdateUser(ctx context.Context, tc tenant.Context, id domain.ID, patch domain.UserPatch) (bool, error) {
	var hashed string
	if patch.Password != nil && *patch.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		hashed = string(h)
	}

	return s.users.Update(ctx, tc, id, func(u *domain.User) {
		u.Apply(patch)
		if hashed != "" {
			u.PasswordHash = hashed
		}
	})
}

func (s *Service) DeleteUser(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.users.Delete(ctx, tc, id)
}

// --- Catálogo ---

func (s *Service) GetCategories(ctx context.Context, tc tenant.Context) ([]*domain.Category, error) {
	return s.categories.GetAll(ctx, tc, false)
}

func (s *Service) AddCategory(ctx context.Context, tc tenant.Context, c *domain.Category) (bool, error) {
	return s.categories.Add(ctx, tc, c)
}

func (s *Service) DeleteCategory(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.categories.Delete(ctx, tc, id)
}

func (s *Service) GetLocations(ctx context.Context, tc tenant.Context) ([]*domain.Location, error) {
	return s.locations.GetAll(ctx, tc, false)
}

func (s *Service) AddLocation(ctx context.Context, tc tenant.Context, l *domain.Location) (bool, error) {
	return s.locations.Add(ctx, tc, l)
}

func (s *Service) DeleteLocation(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.locations.Delete(ctx, tc, id)
}

func (s *Service) GetPhysicalLocations(ctx context.Context, tc tenant.Context) ([]*domain.PhysicalLocation, error) {
	return s.physicalLocations.GetAll(ctx, tc, false)
}

func (s *Service) AddPhysicalLocation(ctx context.Context, tc tenant.Context, l *domain.PhysicalLocation) (bool, error) {
	return s.physicalLocations.Add(ctx, tc, l)
}

func (s *Service) DeletePhysicalLocation(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.physicalLocations.Delete(ctx, tc, id)
}

func (s *Service) GetBoxes(ctx context.Context, tc tenant.Context) ([]*domain.Box, error) {
	return s.boxes.GetAll(ctx, tc, false)
}

func (s *Service) AddBox(ctx context.Context, tc tenant.Context, b *domain.Box) (bool, error) {
	return s.boxes.Add(ctx, tc, b)
}

func (s *Service) DeleteBox(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.boxes.Delete(ctx, tc, id)
}

func (s *Service) GetBrands(ctx context.Context, tc tenant.Context) ([]*domain.Brand, error) {
	return s.brands.GetAll(ctx, tc, false)
}

func (s *Service) AddBrand(ctx context.Context, tc tenant.Context, b *domain.Brand) (bool, error) {
	return s.brands.Add(ctx, tc, b)
}

func (s *Service) DeleteBrand(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.brands.Delete(ctx, tc, id)
}

func (s *Service) GetKnowledge(ctx context.Context, tc tenant.Context) ([]*domain.Knowledge, error) {
	return s.knowledge.GetAll(ctx, tc, false)
}

func (s *Service) AddKnowledge(ctx context.Context, tc tenant.Context, k *domain.Knowledge) (bool, error) {
	return s.knowledge.Add(ctx, tc, k)
}

func (s *Service) DeleteKnowledge(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.knowledge.Delete(ctx, tc, id)
}

func (s *Service) GetWarranties(ctx context.Context, tc tenant.Context) ([]*domain.Warranty, error) {
	return s.warranties.GetAll(ctx, tc, false)
}

func (s *Service) AddWarranty(ctx context.Context, tc tenant.Context, w *domain.Warranty) (bool, error) {
	return s.warranties.Add(ctx, tc, w)
}

func (s *Service) DeleteWarranty(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.warranties.Delete(ctx, tc, id)
}

func (s *Service) GetChecklists(ctx context.Context, tc tenant.Context) ([]*domain.Checklist, error) {
	return s.checklists.GetAll(ctx, tc, false)
}

func (s *Service) AddChecklist(ctx context.Context, tc tenant.Context, c *domain.Checklist) (bool, error) {
	return s.checklists.Add(ctx, tc, c)
}

func (s *Service) DeleteChecklist(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	return s.checklists.Delete(ctx, tc, id)
}

// --- Sequências ---

func (s *Service) NextOrderNumber(ctx context.Context, tc tenant.Context) (int64, error) {
	return s.sequences.Next(ctx, tc, repository.SequenceOrderNumber)
}

func (s *Service) NextClientNumber(ctx context.Context, tc tenant.Context) (int64, error) {
	return s.sequences.Next(ctx, tc, repository.SequenceClientNumber)
}

// --- Auditoria ---

func (s *Service) GetAuditLogs(ctx context.Context, tc tenant.Context) ([]*domain.AuditLogEntry, error) {
	return s.audit.Logs(ctx, tc)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUsers(users []*domain.User) []*domain.User {
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users
}

func logSoftFailure(entity string, err error) {
	logrus.WithError(err).Warnf("Falha não fatal em %s", entity)
}
