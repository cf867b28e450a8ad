// Package opener launches the operating system's default viewer for a file.
// Callers treat failures as notices; nothing in the export path depends on a
// viewer being available.
package opener
