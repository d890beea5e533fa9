package injector

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.API_KEY}, ${ssm./app/config}, ${secret.db_pass}, ${secret.prod/db#user}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// SecretSource fornece os valores remotos (implementado por secrets.Resolver).
type SecretSource interface {
	Parameter(ctx context.Context, name string) (string, error)
	Secret(ctx context.Context, ref string) (string, error)
}

// Injector resolve placeholders em textos da configuração.
type Injector struct {
	source SecretSource
	lookup func(string) (string, bool)
}

// New cria um Injector. Sem source, placeholders ssm/secret geram erro.
func New(source SecretSource) *Injector {
	return &Injector{source: source, lookup: os.LookupEnv}
}

// Interpolate substitui cada ${tipo.chave} pelo valor resolvido.
// Variável de ambiente inexistente vira string vazia.
func (i *Injector) Interpolate(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var err error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		sub := pattern.FindStringSubmatch(match)
		val, resolveErr := i.fetchValue(ctx, sub[1], sub[2])
		if resolveErr != nil {
			err = errors.Join(err, resolveErr)
			return match
		}
		return val
	})

	return result, err
}

// fetchValue centraliza a busca de dados
func (i *Injector) fetchValue(ctx context.Context, sourceType, key string) (string, error) {
	switch sourceType {
	case "env":
		val, _ := i.lookup(key)
		return val, nil

	case "ssm":
		if i.source == nil {
			return "", errors.New("injector: ${ssm." + key + "} sem resolver configurado")
		}
		return i.source.Parameter(ctx, key)

	case "secret":
		if i.source == nil {
			return "", errors.New("injector: ${secret." + key + "} sem resolver configurado")
		}
		return i.source.Secret(ctx, key)
	}

	return "", nil
}
