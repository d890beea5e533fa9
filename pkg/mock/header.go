package mock

import "github.com/google/uuid"

// Header é um par chave/valor que será aplicado na resposta HTTP.
// Active é carregado como dado; a cascata de headers não o consulta.
type Header struct {
	ID     uuid.UUID `json:"id" yaml:"id" validate:"required"`
	Key    string    `json:"key" yaml:"key" validate:"required"`
	Value  string    `json:"value" yaml:"value"`
	Active bool      `json:"active" yaml:"active"`
}

// NewHeader cria um header ativo com um novo ID.
func NewHeader(key, value string) Header {
	return Header{
		ID:     uuid.New(),
		Key:    key,
		Value:  value,
		Active: true,
	}
}
