package injector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/mockerize/pkg/config/injector"
)

type fakeSource struct {
	params  map[string]string
	secrets map[string]string
}

func (f fakeSource) Parameter(_ context.Context, name string) (string, error) {
	if v, ok := f.params[name]; ok {
		return v, nil
	}
	return "", errors.New("parameter not found")
}

func (f fakeSource) Secret(_ context.Context, ref string) (string, error) {
	if v, ok := f.secrets[ref]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestInjector_Interpolate_Environment(t *testing.T) {
	t.Setenv("API_KEY", "12345-abcde")
	t.Setenv("REGION", "us-east-1")

	inj := injector.New(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Interpolação direta", "${env.API_KEY}", "12345-abcde"},
		{"Texto misto", "Service running in ${env.REGION}", "Service running in us-east-1"},
		{"Múltiplos", "https://${env.REGION}.api.com/${env.API_KEY}", "https://us-east-1.api.com/12345-abcde"},
		{"Variável inexistente", "[${env.MOCKERIZE_SURELY_UNSET}]", "[]"},
		{"Sem placeholder", `{"ok":true}`, `{"ok":true}`},
		{"Tipo desconhecido intocado", "${vault.key}", "${vault.key}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inj.Interpolate(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInjector_Interpolate_Remote(t *testing.T) {
	inj := injector.New(fakeSource{
		params:  map[string]string{"/app/url": "https://example.com"},
		secrets: map[string]string{"prod/db#user": "admin"},
	})

	got, err := inj.Interpolate(context.Background(), "${ssm./app/url} as ${secret.prod/db#user}")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com as admin", got)
}

func TestInjector_Interpolate_Errors(t *testing.T) {
	inj := injector.New(fakeSource{})

	got, err := inj.Interpolate(context.Background(), "${ssm./missing}")
	assert.ErrorContains(t, err, "parameter not found")
	assert.Equal(t, "${ssm./missing}", got)

	_, err = injector.New(nil).Interpolate(context.Background(), "${secret.x}")
	assert.Error(t, err)
}
