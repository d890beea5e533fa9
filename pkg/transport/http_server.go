package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/raywall/mockerize/pkg/engine"
	"github.com/raywall/mockerize/pkg/metrics"
	"github.com/raywall/mockerize/pkg/mock"
)

// DefaultShutdownTimeout limita o encerramento gracioso quando nada é informado.
const DefaultShutdownTimeout = 10 * time.Second

// ServerOptions ajusta o servidor HTTP.
type ServerOptions struct {
	// Workers é o número de threads do runtime que executam requisições
	// (GOMAXPROCS); <= 0 mantém o padrão, uma por CPU. Cada conexão é
	// atendida na sua própria goroutine, então nenhuma requisição espera outra.
	Workers         int
	ShutdownTimeout time.Duration
	Metrics         metrics.Provider
	Build           []engine.BuildOption
}

// applyWorkers ajusta GOMAXPROCS e devolve a função que restaura o valor anterior.
func (o ServerOptions) applyWorkers() (workers int, restore func()) {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0), func() {}
	}
	prev := runtime.GOMAXPROCS(o.Workers)
	return o.Workers, func() { runtime.GOMAXPROCS(prev) }
}

// Listen abre o socket TCP em address:port do servidor.
func Listen(info *mock.ServerInfo) (net.Listener, error) {
	addr := info.Server.ListenAddr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &mock.BindError{Addr: addr, Err: err}
	}
	return ln, nil
}

// Run constrói a tabela de rotas do snapshot e atende no listener até ctx
// ser cancelado. O listener é fechado no retorno.
func Run(ctx context.Context, info *mock.ServerInfo, ln net.Listener, opts ServerOptions) error {
	table, err := engine.Build(ctx, info, opts.Build...)
	if err != nil {
		ln.Close()
		return err
	}
	return Serve(ctx, ln, engine.NewHandler(ctx, table), opts)
}

// Serve atende handler no listener já aberto. Quando ctx é cancelado, para de
// aceitar conexões e aguarda as requisições em andamento até ShutdownTimeout.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, opts ServerOptions) error {
	logger := log.Ctx(ctx)

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	workers, restore := opts.applyWorkers()
	defer restore()

	srv := &http.Server{
		Handler:           ObservabilityMiddleware(handler, opts.Metrics),
		ReadHeaderTimeout: 10 * time.Second,
		// Requisições herdam o logger, não o cancelamento
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	logger.Info().
		Str("addr", ln.Addr().String()).
		Int("workers", workers).
		Msg("Servidor HTTP ouvindo")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("servidor HTTP interrompido: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Dur("timeout", timeout).Msg("Encerrando servidor HTTP")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("falha no encerramento gracioso: %w", err)
	}
	<-errCh
	return nil
}
