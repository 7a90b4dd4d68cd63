// Package auditing mantém a trilha imutável de auditoria. O contrato é
// não-bloqueante: falha de auditoria nunca propaga nem impede a operação de
// negócio que a disparou — o erro vai para um canal próprio de falhas e
// para o log local.
package auditing

import (
	"context"
	"fmt"
	"sort"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/infrastructure/repository"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Auditor é o contrato consumido pela orquestração.
type Auditor interface {
	Log(ctx context.Context, tc tenant.Context, action, entity string, entityID domain.ID, details map[string]any)
	Logs(ctx context.Context, tc tenant.Context) ([]*domain.AuditLogEntry, error)
	PurgeTenant(ctx context.Context, tenantID string) (int, error)
	Failures() <-chan error
}

type Service struct {
	repo     *repository.Repository[*domain.AuditLogEntry]
	failures chan error
	now      func() time.Time
}

func NewService(repo *repository.Repository[*domain.AuditLogEntry]) *Service {
	return &Service{
		repo:     repo,
		failures: make(chan error, 64),
		now:      time.Now,
	}
}

// Log registra a ação de forma síncrona. Qualquer falha é engolida: vai para
// o log local e para o canal de falhas, nunca para o chamador.
func (s *Service) Log(ctx context.Context, tc tenant.Context, action, entity string, entityID domain.ID, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}

	entry := &domain.AuditLogEntry{
		ID:        s.newEntryID(),
		Timestamp: s.now().Format(time.RFC3339Nano),
		UserID:    tc.UserID,
		UserEmail: tc.UserEmail,
		UserName:  tc.UserName,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
	}

	// Identidade ausente cai nos valores de sistema/visitante.
	if entry.UserID.IsZero() {
		entry.UserID = "SYSTEM"
	}
	if entry.UserName == "" {
		entry.UserName = "Guest"
	}

	ok, err := s.repo.Add(ctx, tc, entry)
	if err == nil && !ok {
		err = fmt.Errorf("registro de auditoria recusado: %s", action)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"action": action,
			"entity": entity,
			"tenant": tc.TenantID,
		}).WithError(err).Warn("Falha ao gravar registro de auditoria")

		select {
		case s.failures <- err:
		default:
			// Canal cheio: a falha já está no log local.
		}
	}
}

// Logs devolve a trilha do tenant ordenada por timestamp decrescente.
func (s *Service) Logs(ctx context.Context, tc tenant.Context) ([]*domain.AuditLogEntry, error) {
	entries, err := s.repo.GetAll(ctx, tc, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})

	return entries, nil
}

// PurgeTenant remove a trilha inteira do tenant. Só o expurgo de tenant
// chama isto: fora dele a trilha é imutável.
func (s *Service) PurgeTenant(ctx context.Context, tenantID string) (int, error) {
	return s.repo.PurgeTenant(ctx, tenantID)
}

// Failures expõe o canal de falhas de auditoria para observação externa.
func (s *Service) Failures() <-chan error {
	return s.failures
}

func (s *Service) newEntryID() domain.ID {
	suffix, err := gonanoid.Generate(idAlphabet, 8)
	if err != nil {
		suffix = fmt.Sprintf("%08d", s.now().Nanosecond())
	}
	return domain.ID(fmt.Sprintf("AUDIT-%d-%s", s.now().UnixMilli(), suffix))
}
