package mock

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format é a codificação textual do documento.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath escolhe YAML para .yaml/.yml e JSON para o resto.
func FormatFromPath(p string) Format {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode converte o documento em ServerInfo, valida e resolve as respostas ativas.
// Campos desconhecidos são rejeitados. Erros de sintaxe, esquema ou validação
// retornam *ConfigError com a origem preenchida.
func Decode(data []byte, format Format, source string) (*ServerInfo, error) {
	var info ServerInfo

	var ce *ConfigError
	if format == FormatYAML {
		ce = decodeYAML(data, &info)
	} else {
		ce = decodeJSON(data, &info)
	}
	if ce == nil {
		if err := info.Validate(); err != nil {
			ce = &ConfigError{Err: err}
		}
	}
	if ce != nil {
		ce.Source = source
		return nil, ce
	}

	info.normalize()
	return &info, nil
}

// Encode serializa com indentação de 2 espaços, na ordem declarada dos campos.
func Encode(info *ServerInfo, format Format) ([]byte, error) {
	var buf bytes.Buffer

	if format == FormatYAML {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeJSON(data []byte, info *ServerInfo) *ConfigError {
	// Validação sintática do documento inteiro primeiro: o offset do
	// SyntaxError fica relativo ao início do arquivo.
	if err := json.Unmarshal(data, new(json.RawMessage)); err != nil {
		return locateJSON(data, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(info); err != nil {
		return locateJSON(data, err)
	}
	return nil
}

func locateJSON(data []byte, err error) *ConfigError {
	ce := &ConfigError{Err: err}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		ce.Line, ce.Column = position(data, syntaxErr.Offset)
	case errors.As(err, &typeErr):
		ce.Line, ce.Column = position(data, typeErr.Offset)
	}
	return ce
}

// position converte um offset em bytes para linha/coluna (1-based).
// O offset aponta para o byte logo após o caractere problemático.
func position(data []byte, offset int64) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = 1 + bytes.Count(prefix, []byte{'\n'})
	column = len(prefix) - (bytes.LastIndexByte(prefix, '\n') + 1)
	if column == 0 {
		column = 1
	}
	return line, column
}

var yamlLocation = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)

func decodeYAML(data []byte, info *ServerInfo) *ConfigError {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(info); err != nil {
		if errors.Is(err, io.EOF) {
			return &ConfigError{Err: errors.New("documento vazio")}
		}
		ce := &ConfigError{Err: err}
		if m := yamlLocation.FindStringSubmatch(err.Error()); m != nil {
			ce.Line, _ = strconv.Atoi(m[1])
			if m[2] != "" {
				ce.Column, _ = strconv.Atoi(m[2])
			}
		}
		return ce
	}
	return nil
}
