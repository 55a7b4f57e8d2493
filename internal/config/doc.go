// Package config provides configuration parsing for the reago tools.
//
// The configuration is stored in reago.yaml and covers the inspector
// server, telemetry, and the bench command. Every field has a default,
// so an empty or missing file is valid.
//
// # Configuration File Structure
//
//	inspector:
//	  enabled: true
//	  addr: "localhost:7979"
//	telemetry:
//	  metrics: true
//	  tracing: false
//	  namespace: "reago"
//	  tracer: "reago"
//	bench:
//	  profile: "standard"
//	  json: false
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.Inspector.Addr)
package config
