// Package i18n loads the embedded message catalogs (one YAML file per locale)
// into an x/text catalog and renders console and report texts through
// message printers. English is the base locale; every other locale must
// define each base key.
package i18n
