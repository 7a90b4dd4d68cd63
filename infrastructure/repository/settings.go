package repository

import (
	"bytes"
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

const settingsCollection = "settings"

// SettingsRepository guarda as configurações de todos os tenants num único
// array; a busca é uma varredura linear por tenantId. Instalações antigas
// (mono-tenant) gravavam um objeto solto no lugar do array — a primeira
// leitura promove esse registro legado para a entrada do tenant master.
type SettingsRepository struct {
	store collection.Store
}

func NewSettingsRepository(store collection.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get devolve as configurações do tenant, criando a entrada com os valores
// padrão na primeira leitura.
func (r *SettingsRepository) Get(ctx context.Context, tenantID string) (*domain.TenantSettings, error) {
	all, version, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range all {
		if s.TenantID == tenantID {
			return s, nil
		}
	}

	// Criação preguiçosa: primeira leitura materializa o padrão.
	defaults := domain.DefaultSettings(tenantID)
	all = append(all, defaults)
	if err := r.persist(ctx, all, version); err != nil {
		return nil, err
	}

	return defaults, nil
}

// Save grava as configurações do tenant, substituindo a entrada existente.
func (r *SettingsRepository) Save(ctx context.Context, tenantID string, settings *domain.TenantSettings) error {
	settings.TenantID = tenantID

	all, version, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, s := range all {
		if s.TenantID == tenantID {
			all[i] = settings
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, settings)
	}

	return r.persist(ctx, all, version)
}

// List devolve as configurações de todos os tenants (uso interno: expurgo e
// agendador de backup).
func (r *SettingsRepository) List(ctx context.Context) ([]*domain.TenantSettings, error) {
	all, _, err := r.loadAll(ctx)
	return all, err
}

// Purge remove a entrada de configurações do tenant. O master nunca é
// removido, independente do chamador.
func (r *SettingsRepository) Purge(ctx context.Context, tenantID string) error {
	if tenantID == "" || tenantID == tenant.Master {
		return tenant.ErrPurgeMaster
	}

	all, version, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	kept := all[:0]
	for _, s := range all {
		if s.TenantID == tenantID {
			continue
		}
		kept = append(kept, s)
	}

	return r.persist(ctx, kept, version)
}

func (r *SettingsRepository) loadAll(ctx context.Context) ([]*domain.TenantSettings, int64, error) {
	doc, version, err := r.store.Read(ctx, settingsCollection)
	if err != nil {
		return nil, 0, errors.Wrap(err, "erro ao carregar configurações")
	}

	if len(doc) == 0 {
		return nil, version, nil
	}

	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return r.promoteLegacy(ctx, trimmed, version)
	}

	var all []*domain.TenantSettings
	if err := json.Unmarshal(doc, &all); err != nil {
		return nil, 0, errors.Wrap(err, "coleção de configurações corrompida")
	}

	return all, version, nil
}

// promoteLegacy migra o registro mono-tenant legado para o array
// multi-tenant, sob o tenant master. Executa uma única vez: depois da
// promoção a coleção passa a ser um array.
func (r *SettingsRepository) promoteLegacy(ctx context.Context, doc []byte, version int64) ([]*domain.TenantSettings, int64, error) {
	var raw map[string]any
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, 0, errors.Wrap(err, "registro legado de configurações corrompido")
	}

	legacy := domain.DefaultSettings(tenant.Master)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           legacy,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "erro ao preparar migração de configurações")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, 0, errors.Wrap(err, "erro ao migrar configurações legadas")
	}
	legacy.TenantID = tenant.Master

	all := []*domain.TenantSettings{legacy}
	if err := r.persist(ctx, all, version); err != nil {
		return nil, 0, err
	}

	logrus.Info("Configurações legadas promovidas para o tenant master")

	// Relê para obter a versão pós-migração.
	return r.loadAll(ctx)
}

func (r *SettingsRepository) persist(ctx context.Context, all []*domain.TenantSettings, version int64) error {
	if all == nil {
		all = []*domain.TenantSettings{}
	}

	doc, err := json.Marshal(all)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar configurações")
	}

	if _, err := r.store.Replace(ctx, settingsCollection, doc, version); err != nil {
		return errors.Wrap(err, "erro ao persistir configurações")
	}

	return nil
}
