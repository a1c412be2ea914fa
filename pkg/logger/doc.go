// Package logger builds configured log/slog loggers and provides typed
// attribute helpers for the identifiers that appear throughout the module.
//
// Loggers are injected into services at construction time; no package in
// this module logs through a global logger except as a slog.Default()
// fallback when none was provided.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "notification"),
//	)
//	log.InfoContext(ctx, "notification dispatched",
//		logger.NotificationID(n.ID),
//		logger.Channel("email"),
//	)
package logger
