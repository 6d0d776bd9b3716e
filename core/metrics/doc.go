// Package metrics defines the sinks recording production plans. Sinks like
// the Prometheus and InfluxDB ones in infra/metrics register themselves in the
// factory and are combined with NewMultiSink when several are configured.
package metrics
