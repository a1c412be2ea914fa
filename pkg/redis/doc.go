// Package redis provides helpers for connecting to the Redis instance used
// as a lookaside cache for recipient directory lookups.
//
// Connect retries the connection using the supplied configuration and
// verifies it with a ping; Healthcheck exposes a probe function for
// orchestration.
package redis
