package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/raywall/mockerize/pkg/engine"
	"github.com/raywall/mockerize/pkg/metrics"
	"github.com/raywall/mockerize/pkg/mock"
)

// LambdaHandler adapta eventos do API Gateway para o mesmo http.Handler do modo local.
type LambdaHandler struct {
	handler http.Handler
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(handler http.Handler, provider metrics.Provider) *LambdaHandler {
	return &LambdaHandler{handler: ObservabilityMiddleware(handler, provider)}
}

// StartLambda constrói a tabela de rotas e entrega o controle ao runtime da Lambda.
func StartLambda(ctx context.Context, info *mock.ServerInfo, opts ServerOptions) error {
	table, err := engine.Build(ctx, info, opts.Build...)
	if err != nil {
		return err
	}

	h := NewLambdaHandler(engine.NewHandler(ctx, table), opts.Metrics)
	lambda.StartWithOptions(h.Handle, lambda.WithContext(ctx))
	return nil
}

// Handle processa a requisição Lambda
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	r, err := toHTTPRequest(ctx, req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Evento API Gateway inválido")
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	w := newLambdaResponseWriter()
	h.handler.ServeHTTP(w, r)
	return w.response(), nil
}

func toHTTPRequest(ctx context.Context, req events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("corpo base64 inválido: %w", err)
		}
		body = decoded
	}

	query := url.Values{}
	for k, vs := range req.MultiValueQueryStringParameters {
		query[k] = append(query[k], vs...)
	}
	for k, v := range req.QueryStringParameters {
		if _, ok := query[k]; !ok {
			query.Set(k, v)
		}
	}

	path := req.Path
	if path == "" {
		path = "/"
	}
	target := (&url.URL{Path: path, RawQuery: query.Encode()}).String()

	method := strings.ToUpper(req.HTTPMethod)
	if method == "" {
		method = http.MethodGet
	}

	r, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for k, vs := range req.MultiValueHeaders {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	for k, v := range req.Headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return r, nil
}

// lambdaResponseWriter acumula a resposta do handler em memória.
type lambdaResponseWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newLambdaResponseWriter() *lambdaResponseWriter {
	return &lambdaResponseWriter{header: http.Header{}}
}

func (w *lambdaResponseWriter) Header() http.Header { return w.header }

func (w *lambdaResponseWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *lambdaResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *lambdaResponseWriter) response() events.APIGatewayProxyResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	single := make(map[string]string, len(w.header))
	for k, vs := range w.header {
		if len(vs) > 0 {
			single[k] = vs[0]
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           single,
		MultiValueHeaders: map[string][]string(w.header.Clone()),
		Body:              w.body.String(),
	}
}
