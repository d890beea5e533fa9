package mock

import (
	"net/http"

	"github.com/google/uuid"
)

// Response é uma das respostas candidatas de uma Route.
type Response struct {
	ID      uuid.UUID    `json:"id" yaml:"id" validate:"required"`
	Name    string       `json:"name" yaml:"name"`
	Status  int          `json:"status" yaml:"status" validate:"gte=100,lte=599"`
	Body    string       `json:"response" yaml:"response"`
	Type    ResponseType `json:"responseType" yaml:"responseType"`
	Active  bool         `json:"active" yaml:"active"`
	Headers []Header     `json:"headers" yaml:"headers" validate:"dive"`
}

// NewResponse cria uma resposta ativa. Status zero assume 200 e tipo vazio assume text.
func NewResponse(name string, status int, typ ResponseType, body string) Response {
	if status == 0 {
		status = http.StatusOK
	}
	if typ == "" {
		typ = ResponseText
	}
	return Response{
		ID:      uuid.New(),
		Name:    name,
		Status:  status,
		Body:    body,
		Type:    typ,
		Active:  true,
		Headers: []Header{},
	}
}

// AddHeader anexa um header no escopo da resposta.
func (r *Response) AddHeader(h Header) *Response {
	r.Headers = append(r.Headers, h)
	return r
}
