package engine

import (
	"context"

	"github.com/raywall/mockerize/pkg/mock"
)

// Loader é responsável por carregar e decodificar a configuração do servidor.
// Ele abstrai a origem do documento (Sistema de arquivos, S3, DynamoDB, Redis, etc).
type Loader interface {
	// Load lê o documento a partir de uma origem e retorna o snapshot validado.
	Load(ctx context.Context, source string) (*mock.ServerInfo, error)
}

// Saver persiste um snapshot em um destino.
type Saver interface {
	Save(ctx context.Context, info *mock.ServerInfo, target string, overwrite bool) error
}

// Interpolator resolve placeholders (${env.X}, ${ssm.X}, ...) em corpos e
// valores de header no momento do build.
type Interpolator interface {
	Interpolate(ctx context.Context, input string) (string, error)
}
