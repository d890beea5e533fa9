package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/lib/pq"
)

// QueryFunc executa uma consulta que retorna uma única coluna de texto.
type QueryFunc func(ctx context.Context, dsn, query string, args ...any) (string, error)

// Valores padrão para postgres://...?table=mocks&pk=id&col=document&key=<id>
const (
	DefaultPostgresTable = "mocks"
	DefaultPostgresPK    = "id"
	DefaultPostgresCol   = "document"
)

// Parâmetros consumidos pelo store; os demais seguem para o driver.
var postgresParams = []string{"table", "pk", "col", "key", "format"}

func (s *UniversalStore) loadFromPostgres(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL Postgres inválida: %w", err)
	}

	q := u.Query()
	table := valueOr(q.Get("table"), DefaultPostgresTable)
	pk := valueOr(q.Get("pk"), DefaultPostgresPK)
	col := valueOr(q.Get("col"), DefaultPostgresCol)
	key := q.Get("key")
	if key == "" {
		return nil, fmt.Errorf("URL Postgres inválida: parâmetro 'key' obrigatório")
	}

	for _, p := range postgresParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		pq.QuoteIdentifier(col), pq.QuoteIdentifier(table), pq.QuoteIdentifier(pk))

	content, err := s.query(ctx, u.String(), query, key)
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// queryPostgres abre uma conexão efêmera com o driver lib/pq.
func queryPostgres(ctx context.Context, dsn, query string, args ...any) (string, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("erro ao abrir conexão SQL: %w", err)
	}
	defer db.Close()

	ctxDb, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var content string
	if err := db.QueryRowContext(ctxDb, query, args...).Scan(&content); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("registro não encontrado no Postgres")
		}
		return "", fmt.Errorf("erro na query SQL: %w", err)
	}
	return content, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
