package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/raywall/mockerize/pkg/config"
)

// Configure inicializa o logger global a partir das variáveis MOCKERIZE_LOG_*.
// Logs vão para stderr; stdout fica livre para a saída dos comandos.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return ConfigureWriter(cfg, os.Stderr)
}

// ConfigureWriter é o Configure com destino explícito.
func ConfigureWriter(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para produção, Console "bonito" para local se solicitado
	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Str("app", "mockerize").
		Logger()

	log.Logger = logger
	return logger
}
