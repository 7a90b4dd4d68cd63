package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

const sequencesCollection = "sequences"

// Nomes de sequência usados para numeração legível de pedidos e clientes.
const (
	SequenceOrderNumber  = "nextOrderNumber"
	SequenceClientNumber = "nextClientNumber"
)

// SequenceRepository guarda contadores inteiros nomeados, um por
// tenant+nome, na coleção de sequências.
type SequenceRepository struct {
	store collection.Store
}

func NewSequenceRepository(store collection.Store) *SequenceRepository {
	return &SequenceRepository{store: store}
}

// Next incrementa e devolve o próximo valor da sequência do tenant ativo.
// A primeira chamada devolve 1.
func (r *SequenceRepository) Next(ctx context.Context, tc tenant.Context, name string) (int64, error) {
	doc, version, err := r.store.Read(ctx, sequencesCollection)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao carregar sequências")
	}

	counters := map[string]int64{}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &counters); err != nil {
			return 0, errors.Wrap(err, "coleção de sequências corrompida")
		}
	}

	key := sequenceKey(tc.TenantID, name)
	next := counters[key] + 1
	counters[key] = next

	payload, err := json.Marshal(counters)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao serializar sequências")
	}

	if _, err := r.store.Replace(ctx, sequencesCollection, payload, version); err != nil {
		return 0, errors.Wrap(err, "erro ao persistir sequências")
	}

	return next, nil
}

// Peek devolve o valor corrente da sequência sem incrementar.
func (r *SequenceRepository) Peek(ctx context.Context, tc tenant.Context, name string) (int64, error) {
	doc, _, err := r.store.Read(ctx, sequencesCollection)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao carregar sequências")
	}

	if len(doc) == 0 {
		return 0, nil
	}

	counters := map[string]int64{}
	if err := json.Unmarshal(doc, &counters); err != nil {
		return 0, errors.Wrap(err, "coleção de sequências corrompida")
	}

	return counters[sequenceKey(tc.TenantID, name)], nil
}

func sequenceKey(tenantID, name string) string {
	return fmt.Sprintf("%s:%s", tenantID, name)
}
