// Package application provides application initialization and dependency wiring.
// It builds the message catalog, report store, file opener and console from
// the configuration and runs packing sessions, keeping the main package
// focused on CLI parsing. Sessions run by one App share the viewer rate limit.
package application
