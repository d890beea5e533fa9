package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"golang.org/x/sync/singleflight"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Resolver busca valores no Parameter Store e no Secrets Manager.
// Os clientes reais são criados sob demanda e os valores ficam em cache
// durante a vida do Resolver. Buscas simultâneas da mesma chave viram uma
// única chamada à AWS.
type Resolver struct {
	region string
	group  singleflight.Group

	mu      sync.Mutex
	ssm     SSMClient
	secrets SecretsClient
	cache   map[string]string
}

// NewResolver cria um Resolver que usa a configuração padrão da AWS.
func NewResolver(region string) *Resolver {
	return &Resolver{region: region, cache: make(map[string]string)}
}

// NewResolverWithClients cria um Resolver com clientes já construídos.
func NewResolverWithClients(ssmClient SSMClient, secretsClient SecretsClient) *Resolver {
	return &Resolver{ssm: ssmClient, secrets: secretsClient, cache: make(map[string]string)}
}

// Parameter lê um parâmetro do SSM (com decrypt).
func (r *Resolver) Parameter(ctx context.Context, name string) (string, error) {
	return r.load("ssm:"+name, func() (string, error) {
		return r.fetchParameter(ctx, name)
	})
}

func (r *Resolver) fetchParameter(ctx context.Context, name string) (string, error) {
	client, err := r.ssmClient(ctx)
	if err != nil {
		return "", err
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter (%s): %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro SSM %s sem valor", name)
	}
	return *out.Parameter.Value, nil
}

// Secret lê um segredo do Secrets Manager.
//
// A referência aceita "id" ou "id#campo"; com campo, o segredo precisa ser
// um objeto JSON e o valor do campo é retornado.
func (r *Resolver) Secret(ctx context.Context, ref string) (string, error) {
	return r.load("secret:"+ref, func() (string, error) {
		return r.fetchSecret(ctx, ref)
	})
}

func (r *Resolver) fetchSecret(ctx context.Context, ref string) (string, error) {
	id, field, hasField := strings.Cut(ref, "#")

	client, err := r.secretsClient(ctx)
	if err != nil {
		return "", err
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager (%s): %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo %s sem SecretString", id)
	}

	val := *out.SecretString
	if hasField {
		val, err = secretField(val, field)
		if err != nil {
			return "", fmt.Errorf("segredo %s: %w", id, err)
		}
	}
	return val, nil
}

func secretField(raw, field string) (string, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return "", fmt.Errorf("conteúdo não é um objeto JSON: %w", err)
	}

	v, ok := data[field]
	if !ok {
		return "", fmt.Errorf("campo '%s' não encontrado", field)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Resolver) ssmClient(ctx context.Context) (SSMClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ssm == nil {
		cfg, err := GetAWSConfig(ctx, r.region)
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar config AWS: %w", err)
		}
		r.ssm = ssm.NewFromConfig(cfg)
	}
	return r.ssm, nil
}

func (r *Resolver) secretsClient(ctx context.Context) (SecretsClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.secrets == nil {
		cfg, err := GetAWSConfig(ctx, r.region)
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar config AWS: %w", err)
		}
		r.secrets = secretsmanager.NewFromConfig(cfg)
	}
	return r.secrets, nil
}

// load consulta o cache e, na falta, executa fetch uma vez por chave.
func (r *Resolver) load(key string, fetch func() (string, error)) (string, error) {
	if v, ok := r.cached(key); ok {
		return v, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if v, ok := r.cached(key); ok {
			return v, nil
		}
		val, err := fetch()
		if err != nil {
			return "", err
		}
		r.store(key, val)
		return val, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *Resolver) cached(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.cache[key]
	return v, ok
}

func (r *Resolver) store(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = value
}
