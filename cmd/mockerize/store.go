package main

import (
	"context"
	"strings"

	"github.com/raywall/mockerize/pkg/mock"
	"github.com/raywall/mockerize/pkg/storage"
)

type documentStore interface {
	Load(ctx context.Context, source string) (*mock.ServerInfo, error)
	Save(ctx context.Context, info *mock.ServerInfo, target string, overwrite bool) error
}

func isRemote(target string) bool {
	for _, scheme := range []string{storage.SchemeS3, storage.SchemeDynamoDB, storage.SchemeRedis, storage.SchemePostgres} {
		if strings.HasPrefix(target, scheme) {
			return true
		}
	}
	return false
}
