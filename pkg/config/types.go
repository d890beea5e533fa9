package config

import "time"

// Runtimes suportados pelo comando run.
const (
	RuntimeLocal  = "local"
	RuntimeLambda = "lambda"
)

// RuntimeConf reúne as configurações do processo. O documento ServerInfo
// descreve o que servir; RuntimeConf descreve como rodar.
type RuntimeConf struct {
	Runtime         string        `env:"MOCKERIZE_RUNTIME" envDefault:"local" validate:"oneof=local lambda"`
	Workers         int           `env:"MOCKERIZE_WORKERS" validate:"gte=0"`
	Interpolate     bool          `env:"MOCKERIZE_INTERPOLATE"`
	ShutdownTimeout time.Duration `env:"MOCKERIZE_SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gte=0"`
	AWSRegion       string        `env:"AWS_REGION"`
	Logging         LoggingConf
	Metrics         MetricsConf
}

type LoggingConf struct {
	Enabled bool   `env:"MOCKERIZE_LOG_ENABLED" envDefault:"true"`
	Level   string `env:"MOCKERIZE_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `env:"MOCKERIZE_LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf
}

type DatadogConf struct {
	Enabled   bool     `env:"DD_ENABLED"`
	Addr      string   `env:"DD_AGENT_HOST" envDefault:"localhost:8125" validate:"required_if=Enabled true"`
	Namespace string   `env:"MOCKERIZE_METRICS_NAMESPACE" envDefault:"mockerize."`
	Tags      []string `env:"DD_TAGS"`
}
