// Package config loads questgo configuration.
//
// Configuration comes from an optional YAML file, then defaults, then
// QUESTGO_<SECTION>_<FIELD> environment variables:
//
//	log:
//	  level: debug            # debug | info | warn | error
//	  format: json            # console | json
//	engine:
//	  seeds: [42, 7]
//	  outstanding_policy: reject
//	  max_qubits: 12
//	metrics:
//	  enabled: true
//	  address: 127.0.0.1:9464
//	  path: /metrics
//
// Validation collects every problem into a ValidationError. The CLI layers
// command-line flags on top through viper.
package config
