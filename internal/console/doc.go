// Package console renders packing progress, bag contents and export results
// as styled, localized text.
package console
