package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/raywall/mockerize/pkg/mock"
)

// Esquemas de origem/destino suportados. Sem esquema (ou file://) é arquivo local.
const (
	SchemeFile     = "file://"
	SchemeS3       = "s3://"
	SchemeDynamoDB = "dynamodb://"
	SchemeRedis    = "redis://"
	SchemePostgres = "postgres://"
)

// UniversalStore lê e grava documentos ServerInfo em múltiplos backends
// (Local, S3, DynamoDB, Redis, PostgreSQL).
type UniversalStore struct {
	region string
	s3     S3API
	dynamo DynamoAPI
	redis  RedisClient
	query  QueryFunc
}

// Option customiza o UniversalStore.
type Option func(*UniversalStore)

// WithRegion define a região AWS usada pelos clientes criados sob demanda.
func WithRegion(region string) Option {
	return func(s *UniversalStore) { s.region = region }
}

// WithS3Client injeta o cliente S3.
func WithS3Client(c S3API) Option {
	return func(s *UniversalStore) { s.s3 = c }
}

// WithDynamoClient injeta o cliente DynamoDB.
func WithDynamoClient(c DynamoAPI) Option {
	return func(s *UniversalStore) { s.dynamo = c }
}

// WithRedisClient injeta o cliente Redis; endereço e credenciais da URI são ignorados.
func WithRedisClient(c RedisClient) Option {
	return func(s *UniversalStore) { s.redis = c }
}

// WithQueryFunc substitui a execução da consulta SQL.
func WithQueryFunc(fn QueryFunc) Option {
	return func(s *UniversalStore) { s.query = fn }
}

// NewUniversalStore cria uma nova instância.
func NewUniversalStore(opts ...Option) *UniversalStore {
	s := &UniversalStore{query: queryPostgres}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load detecta o esquema da fonte, lê o documento e o decodifica.
func (s *UniversalStore) Load(ctx context.Context, source string) (*mock.ServerInfo, error) {
	var (
		data   []byte
		format mock.Format
		err    error
	)

	switch {
	case strings.HasPrefix(source, SchemeS3):
		data, err = s.loadFromS3(ctx, source)
		format = mock.FormatFromPath(source)
	case strings.HasPrefix(source, SchemeDynamoDB):
		data, err = s.loadFromDynamoDB(ctx, source)
		format = formatFor(source, data)
	case strings.HasPrefix(source, SchemeRedis):
		data, err = s.loadFromRedis(ctx, source)
		format = formatFor(source, data)
	case strings.HasPrefix(source, SchemePostgres):
		data, err = s.loadFromPostgres(ctx, source)
		format = formatFor(source, data)
	default:
		return mock.Load(strings.TrimPrefix(source, SchemeFile))
	}

	if err != nil {
		return nil, &mock.IoError{Op: "read", Path: source, Err: err}
	}
	return mock.Decode(data, format, source)
}

// Save codifica o snapshot e grava no destino. Com overwrite false, um
// documento já existente no destino não é substituído.
func (s *UniversalStore) Save(ctx context.Context, info *mock.ServerInfo, target string, overwrite bool) error {
	var format mock.Format
	switch {
	case strings.HasPrefix(target, SchemeS3):
		format = mock.FormatFromPath(target)
	case strings.HasPrefix(target, SchemeDynamoDB), strings.HasPrefix(target, SchemeRedis):
		format = formatFor(target, nil)
	case strings.HasPrefix(target, SchemePostgres):
		return &mock.IoError{Op: "write", Path: target, Err: fmt.Errorf("destino postgres é somente leitura")}
	default:
		return saveToFile(info, strings.TrimPrefix(target, SchemeFile), overwrite)
	}

	data, err := mock.Encode(info, format)
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(target, SchemeS3):
		err = s.saveToS3(ctx, target, data, overwrite)
	case strings.HasPrefix(target, SchemeDynamoDB):
		err = s.saveToDynamoDB(ctx, target, data, overwrite)
	default:
		err = s.saveToRedis(ctx, target, data, overwrite)
	}

	if err != nil {
		return &mock.IoError{Op: "write", Path: target, Err: err}
	}
	return nil
}

// formatFor usa ?format=yaml|json quando presente; senão JSON se o conteúdo
// começar com '{', YAML caso contrário. Sem conteúdo, JSON.
func formatFor(uri string, data []byte) mock.Format {
	if u, err := url.Parse(uri); err == nil {
		switch strings.ToLower(u.Query().Get("format")) {
		case "yaml", "yml":
			return mock.FormatYAML
		case "json":
			return mock.FormatJSON
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '{' {
		return mock.FormatJSON
	}
	return mock.FormatYAML
}
