package observability

import (
	"testing"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/mockerize/pkg/config"
)

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		provider, err := SetupMetrics(config.MetricsConf{})
		require.NoError(t, err)

		assert.IsType(t, &NoopProvider{}, provider)
		assert.NoError(t, provider.Count("request", 1, nil))
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled:   true,
				Addr:      "localhost:8125",
				Namespace: "mockerize.",
				Tags:      []string{"env:test"},
			},
		}

		provider, err := SetupMetrics(cfg)
		require.NoError(t, err)

		dd, ok := provider.(*DatadogProvider)
		require.True(t, ok, "Esperado DatadogProvider, recebido %T", provider)
		assert.NoError(t, dd.Close())
	})
}

func TestDatadogProvider_Delegates(t *testing.T) {
	client := &statsd.NoOpClient{}
	p := &DatadogProvider{client: client}

	assert.NoError(t, p.Count("request", 1, []string{"status:200"}))
	assert.NoError(t, p.Gauge("inflight", 2, nil))
	assert.NoError(t, p.Histogram("latency", 3.5, nil))
}
