// Package collection define o armazenamento subjacente do núcleo: coleções
// nomeadas lidas e substituídas por inteiro. Não há escrita parcial nem
// transação nativa; toda consistência entre coleções é responsabilidade da
// camada de orquestração. A versão devolvida na leitura e exigida na troca
// dá ao repositório um CAS barato sobre a coleção inteira.
package collection

import (
	"context"

	"github.com/pkg/errors"
)

// ErrVersionConflict indica que a coleção mudou entre a leitura e a troca.
// Com um único escritor lógico por tenant isso não deveria acontecer; o erro
// propaga para sinalizar escrita concorrente inesperada, sem retry.
var ErrVersionConflict = errors.New("conflito de versão da coleção")

// Store é o contrato mínimo do armazenamento de coleções.
//
// Read devolve o documento serializado da coleção e sua versão atual.
// Coleção inexistente devolve documento nulo e versão zero, sem erro.
//
// Replace substitui o documento inteiro se expectedVersion ainda for a
// versão corrente (zero cria a coleção) e devolve a nova versão.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, int64, error)
	Replace(ctx context.Context, name string, doc []byte, expectedVersion int64) (int64, error)
	Close() error
}
