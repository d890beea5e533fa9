package mock

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_GetActiveResponse_DefaultsToFirst(t *testing.T) {
	route := NewRoute("/text", MethodGet)
	first := NewResponse("", 200, ResponseText, "hello")
	second := NewResponse("", 204, ResponseText, "")
	route.AddResponse(first).AddResponse(second)

	active, ok := route.GetActiveResponse()
	require.True(t, ok)
	assert.Equal(t, first.ID, active.ID)

	// O padrão implícito não altera o estado persistido
	assert.Nil(t, route.ActiveResponse)

	route.SetActiveResponse(second.ID)
	active, ok = route.GetActiveResponse()
	require.True(t, ok)
	assert.Equal(t, second.ID, active.ID)
}

func TestRoute_SetActiveResponse_UpdatesPersistedReference(t *testing.T) {
	route := NewRoute("/", MethodGet)

	assert.Nil(t, route.ActiveResponse)
	_, ok := route.GetActiveResponse()
	assert.False(t, ok, "rota sem respostas não deveria ter resposta ativa")

	resp := NewResponse("", 200, ResponseText, "")
	route.AddResponse(resp)
	route.SetActiveResponse(resp.ID)

	require.NotNil(t, route.ActiveResponse)
	assert.Equal(t, resp.ID, *route.ActiveResponse)

	active, ok := route.GetActiveResponse()
	require.True(t, ok)
	assert.Same(t, &route.Responses[0], active)
}

func TestRoute_SetActiveResponse_UnknownID(t *testing.T) {
	route := NewRoute("/", MethodGet)
	resp := NewResponse("ok", 200, ResponseText, "ok")
	route.AddResponse(resp)
	route.SetActiveResponse(resp.ID)

	missing := uuid.New()
	route.SetActiveResponse(missing)

	_, ok := route.GetActiveResponse()
	assert.False(t, ok, "ID inexistente deveria resultar em nenhuma resposta ativa")

	// O ID persistido fica com o último valor válido
	require.NotNil(t, route.ActiveResponse)
	assert.Equal(t, resp.ID, *route.ActiveResponse)
}

func TestRoute_Resolve_MatchesByIdentity(t *testing.T) {
	route := NewRoute("/", MethodGet)
	a := NewResponse("a", 200, ResponseText, "a")
	b := NewResponse("b", 201, ResponseText, "b")
	route.AddResponse(a).AddResponse(b)
	id := b.ID
	route.ActiveResponse = &id

	route.resolve()

	active, ok := route.GetActiveResponse()
	require.True(t, ok)
	assert.Equal(t, "b", active.Name)
	assert.Same(t, &route.Responses[1], active)
}
