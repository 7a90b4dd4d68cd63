package collection

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const collectionsTable = "collections"

// PostgresStore usa o Postgres como armazém remoto de documentos: uma linha
// por coleção, sempre substituída por inteiro. Nenhuma consulta por registro
// é feita aqui, preservando a premissa de leitura/troca de coleção completa.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir conexão com o Postgres")
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "erro ao testar conexão com o Postgres")
	}

	store := &PostgresStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name    TEXT PRIMARY KEY,
			version BIGINT NOT NULL,
			doc     JSONB NOT NULL
		)`)
	return errors.Wrap(err, "erro ao preparar tabela de coleções")
}

func (s *PostgresStore) Read(ctx context.Context, name string) ([]byte, int64, error) {
	query, args, err := squirrel.
		Select("doc", "version").
		From(collectionsTable).
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, errors.Wrap(err, "erro ao construir consulta")
	}

	var doc []byte
	var version int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&doc, &version)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, errors.Wrapf(err, "erro ao ler coleção %s", name)
	}

	return doc, version, nil
}

func (s *PostgresStore) Replace(ctx context.Context, name string, doc []byte, expectedVersion int64) (int64, error) {
	next := expectedVersion + 1

	if expectedVersion == 0 {
		query, args, err := squirrel.
			Insert(collectionsTable).
			Columns("name", "version", "doc").
			Values(name, next, doc).
			Suffix("ON CONFLICT (name) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return 0, errors.Wrap(err, "erro ao construir inserção")
		}

		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, errors.Wrapf(err, "erro ao criar coleção %s", name)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return 0, ErrVersionConflict
		}
		return next, nil
	}

	query, args, err := squirrel.
		Update(collectionsTable).
		Set("doc", doc).
		Set("version", next).
		Where(squirrel.Eq{"name": name, "version": expectedVersion}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir atualização")
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "erro ao trocar coleção %s", name)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return 0, ErrVersionConflict
	}

	return next, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
