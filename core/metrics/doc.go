// Package metrics defines the events emitted by the engine and the Recorder
// interface that sinks implement. Rule tables report one RuleEvent per
// dispatch; the application reports one ScenarioEvent per evaluated
// scenario. Sinks are built from configuration through a factory registry
// and are combined with NewMultiRecorder when more than one is configured.
package metrics
