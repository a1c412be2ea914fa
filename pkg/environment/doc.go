// Package environment defines the application runtime environment and
// helpers for carrying it through context.
//
// The environment drives behavior that must differ between local work and
// real deployments. Most notably, channel senders that are left unconfigured
// return an explicit "not configured" error in production but simulate a
// successful send everywhere else, so the rest of the system can run without
// live credentials.
package environment
