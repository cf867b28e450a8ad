// Package student ties a named student to their bag and exports the
// resulting report.
package student
