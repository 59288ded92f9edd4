// Package app wires the application together: configuration, logging,
// platform clients, services, the chi router with its middleware chain,
// and the HTTP server lifecycle including graceful shutdown.
package app
