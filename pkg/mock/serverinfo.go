package mock

import (
	"fmt"
	"os"
)

const (
	DefaultServerAddr        = "127.0.0.1"
	DefaultServerPort uint16 = 8080
)

// ServerInfo é a unidade persistida: um Server e o Router que ele usa.
// Server e Router se referenciam apenas por ID.
type ServerInfo struct {
	Server Server `json:"server" yaml:"server"`
	Router Router `json:"router" yaml:"router"`
}

// NewServerInfo cria uma configuração vazia escutando em 127.0.0.1:8080.
func NewServerInfo() (*ServerInfo, error) {
	router := NewRouter(nil)
	server, err := NewServer(router.ID, DefaultServerAddr, DefaultServerPort)
	if err != nil {
		return nil, err
	}
	router.BindServer(server)

	return &ServerInfo{Server: *server, Router: router}, nil
}

// Load lê e decodifica um ServerInfo de um arquivo local.
// O formato (JSON ou YAML) é escolhido pela extensão do arquivo.
func Load(path string) (*ServerInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IoError{Op: "read", Path: path, Err: err}
	}
	return Decode(data, FormatFromPath(path), path)
}

// Save grava o ServerInfo em um arquivo local, criando ou truncando o destino.
func Save(info *ServerInfo, path string) error {
	data, err := Encode(info, FormatFromPath(path))
	if err != nil {
		return fmt.Errorf("falha ao serializar ServerInfo para `%s`: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IoError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// normalize troca coleções nulas por vazias e refaz a resolução da resposta
// ativa de cada rota contra a lista recém carregada.
func (si *ServerInfo) normalize() {
	si.Server.Headers = nonNil(si.Server.Headers)
	if si.Router.Routes == nil {
		si.Router.Routes = []Route{}
	}
	for i := range si.Router.Routes {
		route := &si.Router.Routes[i]
		route.Headers = nonNil(route.Headers)
		if route.Responses == nil {
			route.Responses = []Response{}
		}
		for j := range route.Responses {
			route.Responses[j].Headers = nonNil(route.Responses[j].Headers)
			if route.Responses[j].Type == "" {
				route.Responses[j].Type = ResponseText
			}
		}
		route.resolve()
	}
}

func nonNil(h []Header) []Header {
	if h == nil {
		return []Header{}
	}
	return h
}
