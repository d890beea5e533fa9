package mock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServerInfo(t *testing.T) *ServerInfo {
	t.Helper()

	info, err := NewServerInfo()
	require.NoError(t, err)
	info.Server.Name = "server name"
	info.Server.Description = "description"
	info.Server.AddHeader(NewHeader("X-Server", "1"))

	resp := NewResponse("response name", 200, ResponseText, "body <b>html</b> & more")
	resp.AddHeader(NewHeader("X-Response", "3"))
	alt := NewResponse("json", 201, ResponseJSON, `{"ok":true}`)

	route := NewRoute("/hello-world", MethodGet)
	route.AddHeader(NewHeader("X-Route", "2"))
	route.AddResponse(resp).AddResponse(alt)
	route.SetActiveResponse(alt.ID)
	info.Router.AddRoute(route)

	info.Router.AddRoute(NewRoute("/empty", MethodPost))
	return info
}

func TestNewServerInfo_Defaults(t *testing.T) {
	info, err := NewServerInfo()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", info.Server.Address.String())
	assert.Equal(t, uint16(8080), info.Server.Port)
	assert.Empty(t, info.Server.Name)
	assert.Empty(t, info.Server.Description)
	assert.Empty(t, info.Router.Routes)
	assert.Equal(t, info.Router.ID, info.Server.RouterID)
	require.NotNil(t, info.Router.ServerID)
	assert.Equal(t, info.Server.ID, *info.Router.ServerID)
}

func TestServerInfo_RoundTrip(t *testing.T) {
	for _, name := range []string{"server.json", "server.yaml"} {
		t.Run(name, func(t *testing.T) {
			original := newTestServerInfo(t)
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, Save(original, path))
			loaded, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, original, loaded)

			active, ok := loaded.Router.Routes[0].GetActiveResponse()
			require.True(t, ok)
			assert.Equal(t, "json", active.Name)
		})
	}
}

func TestServerInfo_RoundTrip_EmptyCollections(t *testing.T) {
	info, err := NewServerInfo()
	require.NoError(t, err)
	info.Router.ServerID = nil

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, Save(info, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, info, loaded)
	assert.Nil(t, loaded.Router.ServerID)
}

func TestSave_StableFormatting(t *testing.T) {
	info := newTestServerInfo(t)
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, Save(info, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	// Ordem dos campos segue a declaração das structs
	assert.Less(t, strings.Index(text, `"server"`), strings.Index(text, `"router"`))
	assert.Less(t, strings.Index(text, `"routerId"`), strings.Index(text, `"address"`))
	assert.Contains(t, text, "\n  \"server\": {\n")
	assert.Contains(t, text, "body <b>html</b> & more", "HTML não deveria ser escapado")
	assert.Contains(t, text, `"activeResponse": null`)
}

func TestLoad_ExampleFile(t *testing.T) {
	info, err := Load("testdata/example.server.json")
	require.NoError(t, err)

	assert.Equal(t, uuid.MustParse("a2fe836a-034e-4117-9e0c-4e05df6da784"), info.Server.ID)
	assert.Equal(t, uuid.MustParse("d5926f6e-155f-42cd-8f6b-580e1fc8ab1c"), info.Router.ID)
	require.Len(t, info.Router.Routes, 3)

	index := info.Router.Routes[0]
	assert.Equal(t, MethodGet, index.Method)
	active, ok := index.GetActiveResponse()
	require.True(t, ok)
	assert.Equal(t, uuid.MustParse("13163edf-2650-4533-baad-64e986621781"), active.ID)
	assert.Equal(t, ResponseJSON, active.Type)

	users := info.Router.Routes[1]
	active, ok = users.GetActiveResponse()
	require.True(t, ok, "sem activeResponse a primeira resposta é o padrão")
	assert.Equal(t, 204, active.Status)

	_, ok = info.Router.Routes[2].GetActiveResponse()
	assert.False(t, ok)
}

func TestLoad_MalformedDocument(t *testing.T) {
	_, err := Load("testdata/invalid.server.json")
	require.Error(t, err)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce), "esperado *ConfigError, recebido %T", err)
	assert.Equal(t, 3, ce.Line)
	assert.Equal(t, 16, ce.Column)
	assert.Contains(t, err.Error(), "line 3 column 16")
	assert.Contains(t, err.Error(), "testdata/invalid.server.json")
}

func TestDecode_Errors(t *testing.T) {
	valid, err := Encode(newTestServerInfo(t), FormatJSON)
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     string
		format   Format
		contains string
		line     int
		column   int
	}{
		{name: "Truncado", data: "{\n  \"server\": }", format: FormatJSON, contains: "line 2 column 13", line: 2, column: 13},
		{name: "Vazio", data: "", format: FormatJSON, contains: "unexpected end of JSON input"},
		{name: "Campo desconhecido", data: strings.Replace(string(valid), `"name": "server name"`, `"name": "server name", "extra": 1`, 1), format: FormatJSON, contains: `unknown field "extra"`},
		{name: "Método inválido", data: strings.Replace(string(valid), `"method": "GET"`, `"method": "get"`, 1), format: FormatJSON, contains: "método HTTP inválido"},
		{name: "Tipo inválido", data: strings.Replace(string(valid), `"responseType": "json"`, `"responseType": "xml"`, 1), format: FormatJSON, contains: "tipo de resposta inválido"},
		{name: "Status fora da faixa", data: strings.Replace(string(valid), `"status": 201`, `"status": 42`, 1), format: FormatJSON, contains: "Status"},
		{name: "YAML sintaxe", data: "server:\n  id: [\n", format: FormatYAML, contains: "line"},
		{name: "YAML vazio", data: "", format: FormatYAML, contains: "documento vazio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format, "inline")
			require.Error(t, err)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "esperado *ConfigError, recebido %T", err)
			assert.Equal(t, "inline", ce.Source)
			assert.Contains(t, err.Error(), tt.contains)
			if tt.line > 0 {
				assert.Equal(t, tt.line, ce.Line)
				assert.Equal(t, tt.column, ce.Column)
			}
		})
	}
}

func TestDecode_InvalidAddress(t *testing.T) {
	valid, err := Encode(newTestServerInfo(t), FormatJSON)
	require.NoError(t, err)
	data := strings.Replace(string(valid), `"address": "127.0.0.1"`, `"address": "invalid.ip.addr"`, 1)

	_, err = Decode([]byte(data), FormatJSON, "inline")
	require.Error(t, err)

	var addrErr *AddressError
	require.True(t, errors.As(err, &addrErr), "esperado *AddressError, recebido %v", err)
	assert.Equal(t, "invalid.ip.addr", addrErr.Value)

	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestDecode_DuplicateIDs(t *testing.T) {
	info := newTestServerInfo(t)
	route := &info.Router.Routes[0]
	route.Responses[1].ID = route.Responses[0].ID
	route.ActiveResponse = nil

	data, err := Encode(info, FormatJSON)
	require.NoError(t, err)

	_, err = Decode(data, FormatJSON, "inline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response ID duplicado")
}

func TestDecode_YAMLMatchesJSON(t *testing.T) {
	info := newTestServerInfo(t)

	jsonData, err := Encode(info, FormatJSON)
	require.NoError(t, err)
	yamlData, err := Encode(info, FormatYAML)
	require.NoError(t, err)

	fromJSON, err := Decode(jsonData, FormatJSON, "a.json")
	require.NoError(t, err)
	fromYAML, err := Decode(yamlData, FormatYAML, "a.yaml")
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
}

func TestLoad_IoError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nao-existe.json"))
	require.Error(t, err)

	var ioErr *IoError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSave_IoError(t *testing.T) {
	info := newTestServerInfo(t)
	err := Save(info, filepath.Join(t.TempDir(), "missing-dir", "server.json"))
	require.Error(t, err)

	var ioErr *IoError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Op)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("server.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("s3://bucket/config/SERVER.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("server.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("dynamodb://table/key?col=config"))
}
