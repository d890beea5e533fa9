package transport

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/raywall/mockerize/pkg/metrics"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
)

type ctxKey string

// ContextKeyCorrID guarda o correlation id no contexto da requisição.
const ContextKeyCorrID ctxKey = "correlation_id"

// CorrelationID retorna o correlation id da requisição, se houver.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyCorrID).(string)
	return id
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	corrID      string
	wroteHeader bool
}

// WriteHeader completa os headers de observabilidade. Um correlation id
// definido pelo handler (header configurado no mock) é mantido.
func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	duration := time.Since(rw.startTime)
	if rw.Header().Get(HeaderCorrelationID) == "" {
		rw.Header().Set(HeaderCorrelationID, rw.corrID)
	}
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", duration.Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// ObservabilityMiddleware propaga o correlation id, loga cada requisição e
// emite as métricas de contagem e latência.
func ObservabilityMiddleware(next http.Handler, provider metrics.Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		corrID := r.Header.Get(HeaderCorrelationID)
		if corrID == "" {
			corrID = uuid.NewString()
		}

		logger := log.Ctx(r.Context()).With().Str("correlation_id", corrID).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			startTime:      start,
			corrID:         corrID,
		}

		next.ServeHTTP(wrapper, r.WithContext(ctx))
		if !wrapper.wroteHeader {
			wrapper.WriteHeader(http.StatusOK)
		}

		latency := time.Since(start)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int64("latency_ms", latency.Milliseconds()).
			Msg("request completed")

		if provider != nil {
			tags := []string{"method:" + r.Method, "status:" + strconv.Itoa(wrapper.statusCode)}
			if err := provider.Count(metrics.RequestCount, 1, tags); err != nil {
				logger.Debug().Err(err).Msg("Falha ao enviar métrica")
			}
			if err := provider.Histogram(metrics.RequestLatency, float64(latency.Microseconds())/1000, tags); err != nil {
				logger.Debug().Err(err).Msg("Falha ao enviar métrica")
			}
		}
	})
}
