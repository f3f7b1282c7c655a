package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/nhltiers/core/factory"
	coremetrics "github.com/kilianp07/nhltiers/core/metrics"
)

func TestSinkFactory_Prometheus(t *testing.T) {
	s, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "prometheus"}})
	require.NoError(t, err)
	assert.IsType(t, &PromSink{}, s)
}

func TestSinkFactory_InfluxFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s, err := coremetrics.NewSink([]factory.ModuleConfig{{
		Type: "influx",
		Conf: map[string]any{"url": srv.URL, "token": "t", "org": "o", "bucket": "b"},
	}})
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, s)
}

func TestSinkFactory_MQTTRequiresBroker(t *testing.T) {
	_, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "mqtt", Conf: map[string]any{"topic_prefix": "nhl"}}})
	require.Error(t, err)
}

func TestSinkFactory_Multiple(t *testing.T) {
	s, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "prometheus"}})
	require.NoError(t, err)
	assert.IsType(t, &coremetrics.MultiSink{}, s)
}
