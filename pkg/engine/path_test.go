package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompilePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Parâmetro com hífen", "/api/v1/users/:user-id", "/api/v1/users/{user_id}"},
		{"Primeiro caractere não alfanumérico", "/api/v1/users/:-begin-with-non-alpha", "/api/v1/users/{begin_with_non_alpha}"},
		{"Sequências colapsadas", "/api/v1/users/:substitute-with-non__alpha.numerics", "/api/v1/users/{substitute_with_non_alpha_numerics}"},
		{"Maiúsculas", "/users/:UserID", "/users/{userid}"},
		{"Apenas o primeiro descartado", "/users/:--ab", "/users/{_ab}"},
		{"Sufixo descartado", "/users/:id--", "/users/{id}"},
		{"Segmento literal inalterado", "/api/v1/user-list.json", "/api/v1/user-list.json"},
		{"Vários parâmetros", "/orgs/:org-id/repos/:repo", "/orgs/{org_id}/repos/{repo}"},
		{"Raiz", "/", "/"},
		{"Só o marcador", "/users/:", "/users/{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompilePath(tt.in))
		})
	}
}

func TestCompilePath_Idempotent(t *testing.T) {
	once := CompilePath("/a/:b-c/d")
	assert.Equal(t, once, CompilePath(once))
}
