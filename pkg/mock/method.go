package mock

import "fmt"

// Method é um dos verbos HTTP padrão aceitos em uma rota.
type Method string

const (
	MethodGet     Method = "GET"
	MethodDelete  Method = "DELETE"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodHead    Method = "HEAD"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

// Methods lista os verbos suportados na ordem em que aparecem na documentação.
var Methods = []Method{
	MethodGet, MethodDelete, MethodPost, MethodPut, MethodHead,
	MethodConnect, MethodOptions, MethodTrace, MethodPatch,
}

// IsValid indica se o verbo pertence ao conjunto suportado (comparação case-sensitive).
func (m Method) IsValid() bool {
	for _, v := range Methods {
		if v == m {
			return true
		}
	}
	return false
}

func (m Method) String() string { return string(m) }

// MarshalText implementa encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("método HTTP inválido: %q", string(m))
	}
	return []byte(m), nil
}

// UnmarshalText rejeita qualquer verbo fora da lista suportada.
func (m *Method) UnmarshalText(text []byte) error {
	v := Method(text)
	if !v.IsValid() {
		return fmt.Errorf("método HTTP inválido: %q", string(text))
	}
	*m = v
	return nil
}
