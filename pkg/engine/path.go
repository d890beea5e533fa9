package engine

import "strings"

// ParamMarker marca um segmento de path como parâmetro nomeado (ex: /users/:id).
const ParamMarker = ':'

// CompilePath traduz o path declarativo para a sintaxe de captura do gorilla/mux.
//
// Segmentos iniciados por ':' viram "{nome}": o nome é convertido para
// minúsculas, cada sequência de caracteres não alfanuméricos vira um único '_'
// e um não alfanumérico logo após o marcador é descartado. Os demais segmentos
// passam inalterados.
//
// Exemplo: "/api/v1/users/:user-id" -> "/api/v1/users/{user_id}"
func CompilePath(pattern string) string {
	segments := strings.Split(pattern, "/")
	for i, segment := range segments {
		if len(segment) > 0 && segment[0] == ParamMarker {
			segments[i] = compileParam(segment[1:])
		}
	}
	return strings.Join(segments, "/")
}

func compileParam(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 2)
	b.WriteByte('{')

	prevAlnum := true
	for i, c := range []rune(name) {
		if isASCIIAlnum(c) {
			if !prevAlnum {
				b.WriteByte('_')
			}
			b.WriteRune(toLowerASCII(c))
			prevAlnum = true
			continue
		}
		// Só o primeiro caractere é ignorado sem gerar '_'
		prevAlnum = i == 0
	}

	b.WriteByte('}')
	return b.String()
}

func isASCIIAlnum(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func toLowerASCII(c rune) rune {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
