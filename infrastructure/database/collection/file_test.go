package collection

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadColecaoInexistente(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	doc, version, err := store.Read(context.Background(), "products")
	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.Equal(t, int64(0), version)
}

func TestFileStore_TrocaEVersionamento(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	version, err := store.Replace(ctx, "products", []byte(`[{"id":"1"}]`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	doc, version, err := store.Read(ctx, "products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(doc))
	assert.Equal(t, int64(1), version)

	version, err = store.Replace(ctx, "products", []byte(`[]`), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestFileStore_ConflitoDeVersao(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Replace(ctx, "sales", []byte(`[]`), 0)
	require.NoError(t, err)

	// Troca com versão defasada deve ser recusada sem alterar o arquivo.
	_, err = store.Replace(ctx, "sales", []byte(`[{"id":"S1"}]`), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)

	doc, version, err := store.Read(ctx, "sales")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(doc))
	assert.Equal(t, int64(1), version)
}

func TestFileStore_ArquivoLegadoSemEnvelope(t *testing.T) {
	dir := t.TempDir()
	legacy := []byte(`[{"id":"P1","name":"Pelicula"}]`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), legacy, 0o644))

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	doc, version, err := store.Read(context.Background(), "products")
	require.NoError(t, err)
	assert.JSONEq(t, string(legacy), string(doc))
	assert.Equal(t, int64(1), version)
}
