// Package infra contains technical adapters such as logging backends,
// metrics exporters (Prometheus, InfluxDB, MQTT) and error monitoring.
// These packages should depend only on the interfaces defined in the core
// packages.
package infra
