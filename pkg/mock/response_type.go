package mock

import "fmt"

// ResponseType classifica o corpo de uma Response.
type ResponseType string

const (
	ResponseText ResponseType = "text"
	ResponseJSON ResponseType = "json"
)

// ContentType retorna o Content-Type padrão usado quando nenhum header o define.
func (t ResponseType) ContentType() string {
	if t == ResponseJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

func (t ResponseType) IsValid() bool {
	return t == ResponseText || t == ResponseJSON
}

// MarshalText implementa encoding.TextMarshaler. O valor zero é gravado como "text".
func (t ResponseType) MarshalText() ([]byte, error) {
	if t == "" {
		return []byte(ResponseText), nil
	}
	if !t.IsValid() {
		return nil, fmt.Errorf("tipo de resposta inválido: %q", string(t))
	}
	return []byte(t), nil
}

func (t *ResponseType) UnmarshalText(text []byte) error {
	v := ResponseType(text)
	if !v.IsValid() {
		return fmt.Errorf("tipo de resposta inválido: %q (use text ou json)", string(text))
	}
	*t = v
	return nil
}
