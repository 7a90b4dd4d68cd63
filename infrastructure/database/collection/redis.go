package collection

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	redis "github.com/redis/go-redis/v9"
)

// RedisStore guarda cada coleção como um valor JSON único no Redis, com a
// versão numa chave irmã. O CAS de troca usa WATCH sobre a chave de versão.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisStore{client: client}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Read(ctx context.Context, name string) ([]byte, int64, error) {
	doc, err := s.client.Get(ctx, docKey(name)).Bytes()
	if err == redis.Nil {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, errors.Wrapf(err, "erro ao ler coleção %s", name)
	}

	version, err := s.client.Get(ctx, versionKey(name)).Int64()
	if err == redis.Nil {
		version = seededVersion(true)
	} else if err != nil {
		return nil, 0, errors.Wrapf(err, "erro ao ler versão da coleção %s", name)
	}

	return doc, version, nil
}

func (s *RedisStore) Replace(ctx context.Context, name string, doc []byte, expectedVersion int64) (int64, error) {
	next := expectedVersion + 1

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey(name)).Int64()
		if err == redis.Nil {
			exists, existsErr := tx.Exists(ctx, docKey(name)).Result()
			if existsErr != nil {
				return existsErr
			}
			current = seededVersion(exists > 0)
		} else if err != nil {
			return err
		}

		if current != expectedVersion {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, docKey(name), doc, 0)
			pipe.Set(ctx, versionKey(name), strconv.FormatInt(next, 10), 0)
			return nil
		})
		return err
	}, versionKey(name))

	if errors.Is(err, ErrVersionConflict) {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, errors.Wrapf(err, "erro ao trocar coleção %s", name)
	}

	return next, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// seededVersion é a versão assumida quando a chave de versão não existe:
// uma coleção semeada externamente (documento sem versão) conta como versão
// 1, uma coleção ausente como 0. Read e o CAS de Replace usam o mesmo
// padrão, senão coleções semeadas ficariam presas em ErrVersionConflict.
func seededVersion(docExists bool) int64 {
	if docExists {
		return 1
	}
	return 0
}

func docKey(name string) string {
	return "collection:" + name
}

func versionKey(name string) string {
	return "collection:" + name + ":version"
}
