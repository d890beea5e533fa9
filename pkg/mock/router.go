package mock

import "github.com/google/uuid"

// Router é a coleção ordenada de rotas de um servidor.
// ServerID é apenas uma referência informativa ao Server dono.
type Router struct {
	ID       uuid.UUID  `json:"id" yaml:"id" validate:"required"`
	ServerID *uuid.UUID `json:"serverId" yaml:"serverId"`
	Routes   []Route    `json:"routes" yaml:"routes" validate:"dive"`
}

// NewRouter cria um router sem rotas.
func NewRouter(serverID *uuid.UUID) Router {
	return Router{
		ID:       uuid.New(),
		ServerID: serverID,
		Routes:   []Route{},
	}
}

// BindServer registra o ID do servidor pareado. Nada além disso.
func (r *Router) BindServer(s *Server) *Router {
	id := s.ID
	r.ServerID = &id
	return r
}

// AddRoute anexa uma rota ao final da coleção.
func (r *Router) AddRoute(route Route) *Router {
	r.Routes = append(r.Routes, route)
	return r
}

// FindRoute busca uma rota pelo ID.
func (r *Router) FindRoute(id uuid.UUID) (*Route, bool) {
	for i := range r.Routes {
		if r.Routes[i].ID == id {
			return &r.Routes[i], true
		}
	}
	return nil, false
}
