package storing

import (
	"errors"
	"fmt"
)

// Erros do núcleo de armazenamento.
var (
	// Erros de validação
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	// Erros de persistência
	ErrPersistence = errors.New("erro ao persistir coleção")

	// Erros de escopo de tenant
	ErrTenantRequired = errors.New("tenant não informado")
)

// DuplicateDocumentError indica tentativa de cadastrar um cliente com
// documento já usado por outro cadastro do mesmo tenant.
type DuplicateDocumentError struct {
	Document string
}

func (e *DuplicateDocumentError) Error() string {
	return fmt.Sprintf("documento já cadastrado: %s", e.Document)
}

// IsDuplicateDocument verifica se o erro é de documento duplicado.
func IsDuplicateDocument(err error) bool {
	var dup *DuplicateDocumentError
	return errors.As(err, &dup)
}

// DuplicateEmailError indica tentativa de cadastrar um usuário com email já
// usado por outra conta. O email é a chave de login e é único entre todos os
// tenants.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email já cadastrado: %s", e.Email)
}

// IsDuplicateEmail verifica se o erro é de email duplicado.
func IsDuplicateEmail(err error) bool {
	var dup *DuplicateEmailError
	return errors.As(err, &dup)
}

// StorageError é um erro com contexto adicional do núcleo de armazenamento.
type StorageError struct {
	Err     error  // Erro base
	Entity  string // Entidade envolvida
	Details string // Detalhes adicionais
}

func (e *StorageError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(baseErr error, entity, details string) *StorageError {
	return &StorageError{
		Err:     baseErr,
		Entity:  entity,
		Details: details,
	}
}
