package collection

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope é o formato em disco: o documento da coleção mais a versão,
// num único arquivo por coleção.
type envelope struct {
	Version int64              `json:"version"`
	Data    jsoniter.RawMessage `json:"data"`
}

// FileStore guarda cada coleção como um arquivo JSON no diretório base,
// escrito de forma atômica (arquivo temporário + rename). É o backend
// padrão: não exige nenhum motor de banco no servidor.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "erro ao criar diretório de coleções")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Read(_ context.Context, name string) ([]byte, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, errors.Wrapf(err, "erro ao ler coleção %s", name)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version == 0 {
		// Arquivo legado sem envelope: o conteúdo é o próprio documento.
		return raw, 1, nil
	}

	return env.Data, env.Version, nil
}

func (s *FileStore) Replace(_ context.Context, name string, doc []byte, expectedVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := int64(0)
	if raw, err := os.ReadFile(s.path(name)); err == nil {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Version > 0 {
			current = env.Version
		} else {
			current = 1
		}
	}

	if current != expectedVersion {
		logrus.WithFields(logrus.Fields{
			"collection": name,
			"expected":   expectedVersion,
			"current":    current,
		}).Warn("Conflito de versão na troca de coleção")
		return 0, ErrVersionConflict
	}

	next := current + 1
	payload, err := json.Marshal(envelope{Version: next, Data: doc})
	if err != nil {
		return 0, errors.Wrapf(err, "erro ao serializar coleção %s", name)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return 0, errors.Wrapf(err, "erro ao criar arquivo temporário para %s", name)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, errors.Wrapf(err, "erro ao gravar coleção %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, errors.Wrapf(err, "erro ao fechar arquivo temporário de %s", name)
	}

	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return 0, errors.Wrapf(err, "erro ao publicar coleção %s", name)
	}

	return next, nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
