// Package report defines the exported student report and the stores it is
// saved to: a JSON file that is replaced on every export, and an in-memory
// store for dry runs.
package report
