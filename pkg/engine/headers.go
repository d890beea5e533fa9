package engine

import (
	"maps"
	"slices"

	"github.com/raywall/mockerize/pkg/mock"
)

// MergeHeaders aplica a cascata servidor -> rota -> resposta.
//
// Cada escopo sobrescreve chaves iguais (comparação case-sensitive) dos
// escopos anteriores. A flag Active não é consultada; quem precisar filtrar
// deve fazê-lo antes.
func MergeHeaders(server, route, response []mock.Header) map[string]mock.Header {
	merged := make(map[string]mock.Header, len(server)+len(route)+len(response))
	for _, scope := range [][]mock.Header{server, route, response} {
		for _, h := range scope {
			merged[h.Key] = h
		}
	}
	return merged
}

// SortedHeaders retorna os valores do mapa ordenados pela chave.
func SortedHeaders(merged map[string]mock.Header) []mock.Header {
	out := make([]mock.Header, 0, len(merged))
	for _, key := range slices.Sorted(maps.Keys(merged)) {
		out = append(out, merged[key])
	}
	return out
}
