package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raywall/mockerize/pkg/config"
	"github.com/raywall/mockerize/pkg/config/injector"
	"github.com/raywall/mockerize/pkg/engine"
	"github.com/raywall/mockerize/pkg/logger"
	"github.com/raywall/mockerize/pkg/observability"
	"github.com/raywall/mockerize/pkg/secrets"
	"github.com/raywall/mockerize/pkg/transport"
)

var (
	loadRuntime   = config.LoadRuntime
	listen        = transport.Listen
	serve         = transport.Run
	lambdaStarter = transport.StartLambda
	notifyContext = signal.NotifyContext
)

type runOptions struct {
	workers     int
	pidFile     string
	runtime     string
	interpolate bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <source>",
		Short: "Sobe o servidor mock descrito no documento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "threads do runtime para atender requisições (GOMAXPROCS; padrão: número de CPUs)")
	cmd.Flags().StringVarP(&opts.pidFile, "pid-file", "p", DefaultPIDPath, "caminho do PID file")
	cmd.Flags().StringVar(&opts.runtime, "runtime", "", "local ou lambda (padrão: MOCKERIZE_RUNTIME)")
	cmd.Flags().BoolVar(&opts.interpolate, "interpolate", false, "resolve ${env.X}, ${ssm.X} e ${secret.X} em corpos e headers")
	return cmd
}

func runServer(cmd *cobra.Command, source string, opts runOptions) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	applyFlags(cmd, rt, opts)
	if err := config.NewValidator().Validate(rt); err != nil {
		return err
	}

	log := logger.Configure(rt.Logging)
	ctx := log.WithContext(cmd.Context())

	provider, err := observability.SetupMetrics(rt.Metrics)
	if err != nil {
		return err
	}
	if c, ok := provider.(io.Closer); ok {
		defer c.Close()
	}

	info, err := newStore(rt.AWSRegion).Load(ctx, source)
	if err != nil {
		return err
	}

	serverOpts := transport.ServerOptions{
		Workers:         rt.Workers,
		ShutdownTimeout: rt.ShutdownTimeout,
		Metrics:         provider,
	}
	if rt.Interpolate {
		inj := injector.New(secrets.NewResolver(rt.AWSRegion))
		serverOpts.Build = append(serverOpts.Build, engine.WithInterpolator(inj))
	}

	if rt.Runtime == config.RuntimeLambda {
		log.Info().Str("source", source).Msg("Iniciando no runtime lambda")
		return lambdaStarter(ctx, info, serverOpts)
	}

	ln, err := listen(info)
	if err != nil {
		return err
	}

	pid := &PIDFile{PID: os.Getpid(), StartTime: time.Now(), Source: source, Addr: ln.Addr().String()}
	if err := WritePIDFile(opts.pidFile, pid); err != nil {
		ln.Close()
		return err
	}
	defer func() {
		if err := RemovePIDFile(opts.pidFile); err != nil {
			log.Warn().Err(err).Msg("PID file não removido")
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Ouvindo em %s. Pressione CTRL+C para sair.\n", ln.Addr())

	ctx, stop := notifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, info, ln, serverOpts); err != nil {
		return fmt.Errorf("falha durante a execução do servidor: %w", err)
	}

	log.Info().Msg("Servidor encerrado")
	return nil
}

// applyFlags sobrepõe as variáveis de ambiente com as flags informadas.
func applyFlags(cmd *cobra.Command, rt *config.RuntimeConf, opts runOptions) {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		rt.Workers = opts.workers
	}
	if flags.Changed("runtime") {
		rt.Runtime = opts.runtime
	}
	if flags.Changed("interpolate") {
		rt.Interpolate = opts.interpolate
	}
}

