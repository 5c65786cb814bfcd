// Package metrics exposes Prometheus metrics for the engine bridge.
//
// A Collector is passed to quest.NewEnv with quest.WithMetrics. It counts
// every guarded call by operation and outcome, times them, counts recovered
// engine faults by the engine function that raised them, and follows
// register allocation through the environment's handle table:
//
//	questgo_engine_calls_total{op, outcome}
//	questgo_engine_call_duration_seconds{op}
//	questgo_engine_faults_total{func}
//	questgo_registers_live{kind}
//	questgo_registers_allocated_total{kind}
//	questgo_registers_released_total{kind}
//
// Handler serves the collector's private registry.
package metrics
