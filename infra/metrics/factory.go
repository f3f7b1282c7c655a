package metrics

import (
	"github.com/kilianp07/nhltiers/core/factory"
	coremetrics "github.com/kilianp07/nhltiers/core/metrics"
	"github.com/kilianp07/nhltiers/infra/mqtt"
	"github.com/prometheus/client_golang/prometheus"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.PredictionSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.PredictionSink, error) {
		// The scrape endpoint is served by StartPromServer on metrics.prometheus_addr.
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.PredictionSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})

	_ = coremetrics.RegisterSink("mqtt", func(conf map[string]any) (coremetrics.PredictionSink, error) {
		var c struct {
			mqtt.Config `json:",squash"`
			TopicPrefix string `json:"topic_prefix"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		cli, err := mqtt.NewPahoClient(c.Config)
		if err != nil {
			return nil, err
		}
		return NewMQTTSink(cli, c.TopicPrefix), nil
	})
}
