// Package repository implementa o acesso às coleções persistidas. O
// repositório é deliberadamente "burro": lê a coleção inteira, altera em
// memória e troca a coleção inteira de volta. O armazenamento subjacente não
// tem escrita parcial nem transação, então toda consistência entre coleções
// fica na camada de orquestração — nunca aqui.
package repository

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Repository é o repositório genérico de uma coleção de registros
// escopados por tenant. Uma instância por tipo de entidade.
type Repository[T domain.Record] struct {
	store collection.Store
	name  string
}

func New[T domain.Record](store collection.Store, name string) *Repository[T] {
	return &Repository[T]{
		store: store,
		name:  name,
	}
}

// Name devolve o nome da coleção subjacente.
func (r *Repository[T]) Name() string {
	return r.name
}

// GetAll devolve os registros do tenant ativo, na ordem de inserção.
// includeAllTenants é a válvula de escape exclusiva do master para
// consultas globais; qualquer outro contexto recebe erro.
func (r *Repository[T]) GetAll(ctx context.Context, tc tenant.Context, includeAllTenants bool) ([]T, error) {
	if includeAllTenants && !tc.IsMaster() {
		return nil, tenant.ErrCrossTenantDenied
	}

	records, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if includeAllTenants {
		return records, nil
	}

	scoped := make([]T, 0, len(records))
	for _, rec := range records {
		if rec.RecordTenant() == tc.TenantID {
			scoped = append(scoped, rec)
		}
	}

	return scoped, nil
}

// Add atribui o tenant ativo ao registro, valida os campos obrigatórios e
// anexa à coleção. Falha de validação devolve false sem erro, para o
// chamador exibir um aviso; falha de I/O propaga como erro.
func (r *Repository[T]) Add(ctx context.Context, tc tenant.Context, rec T) (bool, error) {
	rec.AssignTenant(tc.TenantID)

	if err := rec.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"collection": r.name,
			"tenant":     tc.TenantID,
		}).WithError(err).Warn("Registro recusado por validação")
		return false, nil
	}

	records, version, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	records = append(records, rec)

	if err := r.persist(ctx, records, version); err != nil {
		return false, err
	}

	return true, nil
}

// Update aplica a mutação ao registro do tenant ativo com o id informado.
// Sem correspondência no escopo, é um no-op que devolve false.
func (r *Repository[T]) Update(ctx context.Context, tc tenant.Context, id domain.ID, apply func(T)) (bool, error) {
	records, version, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for _, rec := range records {
		if rec.RecordID() == id && rec.RecordTenant() == tc.TenantID {
			apply(rec)
			found = true
			break
		}
	}

	if !found {
		return false, nil
	}

	if err := r.persist(ctx, records, version); err != nil {
		return false, err
	}

	return true, nil
}

// Get devolve o registro do tenant ativo com o id informado, ou zero/false.
func (r *Repository[T]) Get(ctx context.Context, tc tenant.Context, id domain.ID) (T, bool, error) {
	var zero T

	records, _, err := r.load(ctx)
	if err != nil {
		return zero, false, err
	}

	for _, rec := range records {
		if rec.RecordID() == id && rec.RecordTenant() == tc.TenantID {
			return rec, true, nil
		}
	}

	return zero, false, nil
}

// Delete remove o registro do tenant ativo com o id informado. Remover um
// id inexistente não é erro: devolve false.
func (r *Repository[T]) Delete(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	records, version, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	kept := records[:0]
	removed := false
	for _, rec := range records {
		if rec.RecordID() == id && rec.RecordTenant() == tc.TenantID {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}

	if !removed {
		return false, nil
	}

	if err := r.persist(ctx, kept, version); err != nil {
		return false, err
	}

	return true, nil
}

// PurgeTenant remove todos os registros do tenant informado e devolve
// quantos foram removidos. A proteção do tenant master fica no orquestrador;
// aqui o filtro é mecânico.
func (r *Repository[T]) PurgeTenant(ctx context.Context, tenantID string) (int, error) {
	records, version, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := records[:0]
	removed := 0
	for _, rec := range records {
		if rec.RecordTenant() == tenantID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := r.persist(ctx, kept, version); err != nil {
		return 0, err
	}

	return removed, nil
}

func (r *Repository[T]) load(ctx context.Context) ([]T, int64, error) {
	doc, version, err := r.store.Read(ctx, r.name)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "erro ao carregar coleção %s", r.name)
	}

	if len(doc) == 0 {
		return nil, version, nil
	}

	var records []T
	if err := json.Unmarshal(doc, &records); err != nil {
		return nil, 0, errors.Wrapf(err, "coleção %s corrompida", r.name)
	}

	return records, version, nil
}

func (r *Repository[T]) persist(ctx context.Context, records []T, version int64) error {
	if records == nil {
		records = []T{}
	}

	doc, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "erro ao serializar coleção %s", r.name)
	}

	if _, err := r.store.Replace(ctx, r.name, doc, version); err != nil {
		return errors.Wrapf(err, "erro ao persistir coleção %s", r.name)
	}

	return nil
}
