package secrets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockSSM struct {
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func (m *MockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return m.GetParameterFunc(ctx, params, optFns...)
}

type MockSecrets struct {
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *MockSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return m.GetSecretValueFunc(ctx, params, optFns...)
}

func secretReturning(value string, calls *int) *MockSecrets {
	return &MockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			if calls != nil {
				*calls++
			}
			return &secretsmanager.GetSecretValueOutput{SecretString: &value}, nil
		},
	}
}

// --- Testes ---

func TestResolver_Parameter(t *testing.T) {
	t.Run("Sucesso com cache", func(t *testing.T) {
		calls := 0
		mockVal := "my-config-value"
		client := &MockSSM{
			GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
				calls++
				assert.Equal(t, "/app/config", *params.Name)
				assert.True(t, *params.WithDecryption)
				return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: &mockVal}}, nil
			},
		}
		r := NewResolverWithClients(client, nil)

		for range 2 {
			v, err := r.Parameter(context.Background(), "/app/config")
			require.NoError(t, err)
			assert.Equal(t, mockVal, v)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("Erro na AWS", func(t *testing.T) {
		client := &MockSSM{
			GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
				return nil, errors.New("AWS down")
			},
		}

		_, err := NewResolverWithClients(client, nil).Parameter(context.Background(), "/app/config")
		assert.ErrorContains(t, err, "AWS down")
	})

	t.Run("Parâmetro sem valor", func(t *testing.T) {
		client := &MockSSM{
			GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
				return &ssm.GetParameterOutput{}, nil
			},
		}

		_, err := NewResolverWithClients(client, nil).Parameter(context.Background(), "/x")
		assert.Error(t, err)
	})
}

func TestResolver_Secret(t *testing.T) {
	secretJSON := `{"api_key": "12345", "port": 5432}`

	tests := []struct {
		name    string
		secret  string
		ref     string
		want    string
		wantErr bool
	}{
		{"String pura", "just-a-password", "db", "just-a-password", false},
		{"JSON inteiro", secretJSON, "db", secretJSON, false},
		{"Campo string", secretJSON, "db#api_key", "12345", false},
		{"Campo numérico", secretJSON, "db#port", "5432", false},
		{"Campo ausente", secretJSON, "db#missing", "", true},
		{"Campo em segredo não JSON", "plain", "db#api_key", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolverWithClients(nil, secretReturning(tt.secret, nil))

			got, err := r.Secret(context.Background(), tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_SecretUsesIDWithoutField(t *testing.T) {
	client := &MockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			assert.Equal(t, "prod/db", *params.SecretId)
			v := `{"user":"admin"}`
			return &secretsmanager.GetSecretValueOutput{SecretString: &v}, nil
		},
	}

	v, err := NewResolverWithClients(nil, client).Secret(context.Background(), "prod/db#user")
	require.NoError(t, err)
	assert.Equal(t, "admin", v)
}

func TestResolver_ConcurrentLookupsShareOneCall(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	val := "shared"
	client := &MockSSM{
		GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: &val}}, nil
		},
	}
	r := NewResolverWithClients(client, nil)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := r.Parameter(context.Background(), "/app/shared")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}
