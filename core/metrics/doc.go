// Package metrics defines sinks for observing predictions and prediction
// history persistence. Sinks like PromSink, InfluxSink and MQTTSink live in
// infra/metrics and register themselves with the factory so they can be
// selected from configuration. NewSink returns a MultiSink automatically when
// multiple sinks are configured.
package metrics
