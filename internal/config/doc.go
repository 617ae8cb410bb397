// Package config handles configuration loading for the migchat server.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion. Both settings have defaults, so an empty or absent config
// file is enough to start the server.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	server:
//	  listen_addr: "${MIGCHAT_LISTEN_ADDR}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
//	server:
//	  listen_addr: "0.0.0.0:50051"
//
//	database:
//	  path: "migchat_server.db"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
