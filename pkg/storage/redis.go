package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient é o subconjunto de *redis.Client usado pelo store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// ErrAlreadyExists indica que o destino já contém um documento.
var ErrAlreadyExists = errors.New("documento já existe no destino")

type redisLocation struct {
	opts *redis.Options
	key  string
}

func parseRedisURI(uri string) (redisLocation, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return redisLocation{}, fmt.Errorf("URL Redis inválida: %w", err)
	}

	loc := redisLocation{
		opts: &redis.Options{Addr: u.Host},
		key:  strings.TrimPrefix(u.Path, "/"),
	}
	if u.User != nil {
		loc.opts.Username = u.User.Username()
		loc.opts.Password, _ = u.User.Password()
	}
	if db := u.Query().Get("db"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return redisLocation{}, fmt.Errorf("URL Redis inválida: db '%s' não numérico", db)
		}
		loc.opts.DB = n
	}
	if loc.opts.Addr == "" || loc.key == "" {
		return redisLocation{}, fmt.Errorf("URL Redis inválida: esperado redis://host:porta/chave, recebido %s", uri)
	}
	return loc, nil
}

// withRedis executa fn com o cliente injetado ou com um cliente efêmero para a URI.
func (s *UniversalStore) withRedis(loc redisLocation, fn func(RedisClient) error) error {
	if s.redis != nil {
		return fn(s.redis)
	}

	client := redis.NewClient(loc.opts)
	defer client.Close()
	return fn(client)
}

func (s *UniversalStore) loadFromRedis(ctx context.Context, uri string) ([]byte, error) {
	loc, err := parseRedisURI(uri)
	if err != nil {
		return nil, err
	}

	var val string
	err = s.withRedis(loc, func(c RedisClient) error {
		var getErr error
		val, getErr = c.Get(ctx, loc.key).Result()
		if errors.Is(getErr, redis.Nil) {
			return fmt.Errorf("chave '%s' não encontrada no Redis", loc.key)
		}
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

func (s *UniversalStore) saveToRedis(ctx context.Context, uri string, data []byte, overwrite bool) error {
	loc, err := parseRedisURI(uri)
	if err != nil {
		return err
	}

	return s.withRedis(loc, func(c RedisClient) error {
		if overwrite {
			return c.Set(ctx, loc.key, data, 0).Err()
		}

		ok, err := c.SetNX(ctx, loc.key, data, 0).Result()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("chave '%s': %w", loc.key, ErrAlreadyExists)
		}
		return nil
	})
}
