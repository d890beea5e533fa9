package mock

import "github.com/google/uuid"

// Route associa um path + método HTTP a um conjunto ordenado de respostas.
//
// A resposta ativa é recalculada na leitura a partir da última seleção
// explícita (SetActiveResponse); nenhum índice é guardado entre mutações.
type Route struct {
	ID             uuid.UUID  `json:"id" yaml:"id" validate:"required"`
	Path           string     `json:"path" yaml:"path" validate:"required"`
	Method         Method     `json:"method" yaml:"method" validate:"required"`
	Headers        []Header   `json:"headers" yaml:"headers" validate:"dive"`
	Responses      []Response `json:"responses" yaml:"responses" validate:"dive"`
	ActiveResponse *uuid.UUID `json:"activeResponse" yaml:"activeResponse"`

	// selected indica que houve uma seleção explícita; requested guarda o ID
	// pedido, mesmo quando ele não existe em Responses.
	selected  bool
	requested uuid.UUID
}

// NewRoute cria uma rota vazia, sem resposta ativa.
func NewRoute(path string, method Method) Route {
	return Route{
		ID:        uuid.New(),
		Path:      path,
		Method:    method,
		Headers:   []Header{},
		Responses: []Response{},
	}
}

// SetActiveResponse seleciona a resposta com o ID informado.
//
// Se o ID existir, ele passa a ser o ActiveResponse persistido. Caso contrário
// ActiveResponse não é alterado e GetActiveResponse passa a retornar "nenhuma".
func (r *Route) SetActiveResponse(id uuid.UUID) {
	r.selected = true
	r.requested = id
	if r.indexOf(id) >= 0 {
		active := id
		r.ActiveResponse = &active
	}
}

// GetActiveResponse retorna a resposta ativa da rota.
//
// Sem seleção explícita, a primeira resposta declarada é usada como padrão
// (sem alterar o estado). Com seleção de um ID inexistente, retorna false.
func (r *Route) GetActiveResponse() (*Response, bool) {
	if !r.selected {
		if len(r.Responses) == 0 {
			return nil, false
		}
		return &r.Responses[0], true
	}
	idx := r.indexOf(r.requested)
	if idx < 0 {
		return nil, false
	}
	return &r.Responses[idx], true
}

// AddResponse anexa uma resposta candidata. Não altera a seleção.
func (r *Route) AddResponse(resp Response) *Route {
	r.Responses = append(r.Responses, resp)
	return r
}

// AddHeader anexa um header no escopo da rota.
func (r *Route) AddHeader(h Header) *Route {
	r.Headers = append(r.Headers, h)
	return r
}

func (r *Route) indexOf(id uuid.UUID) int {
	for i := range r.Responses {
		if r.Responses[i].ID == id {
			return i
		}
	}
	return -1
}

// resolve refaz a seleção a partir do ActiveResponse persistido.
func (r *Route) resolve() {
	r.selected = false
	r.requested = uuid.Nil
	if r.ActiveResponse != nil {
		r.SetActiveResponse(*r.ActiveResponse)
	}
}
