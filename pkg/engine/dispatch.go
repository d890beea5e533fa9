package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/raywall/mockerize/pkg/mock"
)

// RouteEntry é o registro imutável de uma rota servível.
type RouteEntry struct {
	RouteID     uuid.UUID
	ResponseID  uuid.UUID
	Method      mock.Method
	Pattern     string
	Path        string
	Status      int
	Body        string
	ContentType string
	Headers     []mock.Header
}

// RouteTable é o resultado do build: uma entrada por rota com resposta ativa,
// na ordem de declaração.
type RouteTable []RouteEntry

// BuildOption customiza o Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	interpolator Interpolator
}

// WithInterpolator aplica o interpolador aos corpos e valores de header.
func WithInterpolator(i Interpolator) BuildOption {
	return func(o *buildOptions) { o.interpolator = i }
}

// Build transforma o snapshot em uma tabela de rotas.
//
// Rotas sem resposta ativa são omitidas com um warning. Os valores são
// copiados, então alterações posteriores no snapshot não afetam a tabela.
func Build(ctx context.Context, info *mock.ServerInfo, opts ...BuildOption) (RouteTable, error) {
	if info == nil {
		return nil, fmt.Errorf("engine: snapshot nulo")
	}

	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	log := zerolog.Ctx(ctx)
	table := make(RouteTable, 0, len(info.Router.Routes))

	for i := range info.Router.Routes {
		route := &info.Router.Routes[i]

		resp, ok := route.GetActiveResponse()
		if !ok {
			log.Warn().
				Str("route_id", route.ID.String()).
				Str("method", route.Method.String()).
				Str("path", route.Path).
				Msg("Rota sem resposta ativa, ignorada")
			continue
		}

		entry := RouteEntry{
			RouteID:     route.ID,
			ResponseID:  resp.ID,
			Method:      route.Method,
			Pattern:     route.Path,
			Path:        CompilePath(route.Path),
			Status:      resp.Status,
			Body:        resp.Body,
			ContentType: resp.Type.ContentType(),
			Headers:     SortedHeaders(MergeHeaders(info.Server.Headers, route.Headers, resp.Headers)),
		}

		if o.interpolator != nil {
			if err := entry.interpolate(ctx, o.interpolator); err != nil {
				return nil, fmt.Errorf("rota %s %s: %w", route.Method, route.Path, err)
			}
		}

		log.Info().
			Str("route_id", entry.RouteID.String()).
			Str("response_id", entry.ResponseID.String()).
			Str("method", entry.Method.String()).
			Str("path", entry.Path).
			Int("status", entry.Status).
			Msg("Rota registrada")

		table = append(table, entry)
	}

	return table, nil
}

func (e *RouteEntry) interpolate(ctx context.Context, i Interpolator) error {
	body, err := i.Interpolate(ctx, e.Body)
	if err != nil {
		return fmt.Errorf("falha ao interpolar corpo: %w", err)
	}
	e.Body = body

	for idx := range e.Headers {
		value, err := i.Interpolate(ctx, e.Headers[idx].Value)
		if err != nil {
			return fmt.Errorf("falha ao interpolar header %s: %w", e.Headers[idx].Key, err)
		}
		e.Headers[idx].Value = value
	}
	return nil
}

// ServeHTTP escreve a resposta fixa da rota.
func (e RouteEntry) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	for _, header := range e.Headers {
		h.Add(header.Key, header.Value)
	}
	if h.Get("Content-Type") == "" && e.ContentType != "" {
		h.Set("Content-Type", e.ContentType)
	}

	w.WriteHeader(e.Status)
	if _, err := io.WriteString(w, e.Body); err != nil {
		// HEAD, 204 e 304 não aceitam corpo
		zerolog.Ctx(r.Context()).Debug().Err(err).Str("path", e.Path).Msg("Corpo descartado")
	}
}

// NewHandler registra a tabela em um gorilla/mux.Router.
//
// Método divergente em path conhecido responde 404, igual a path desconhecido.
// Se duas entradas colidirem em método e path, a primeira declarada vence.
func NewHandler(ctx context.Context, table RouteTable) http.Handler {
	log := zerolog.Ctx(ctx)

	router := mux.NewRouter()
	router.NotFoundHandler = http.NotFoundHandler()
	router.MethodNotAllowedHandler = http.NotFoundHandler()

	for _, entry := range table {
		route := router.Handle(entry.Path, entry).Methods(entry.Method.String())
		if err := route.GetError(); err != nil {
			log.Warn().Err(err).Str("path", entry.Path).Msg("Path rejeitado pelo roteador")
		}
	}

	return router
}
