// Package mongo provides helpers for connecting to the MongoDB document
// store backing the notification collections.
//
// Connection settings are described by Config, populated from environment
// variables via pkg/config. Connect retries transparently, and Healthcheck
// exposes a probe function for orchestration.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "bms")
//	if err != nil {
//		// handle error, probably terminate the application
//	}
package mongo
