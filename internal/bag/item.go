package bag

import (
	"fmt"
	"strconv"

	"github.com/eugenenazirov/schoolbag/internal/i18n"
)

// Item is something a student can put in a bag. Weight is in grams and is not validated.
type Item struct {
	Name   string
	Weight int
}

// ItemView is the structured representation written to reports.
type ItemView struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// NewItem returns an item. Items are tracked by pointer, so two items with
// the same name and weight are still distinct.
func NewItem(name string, weight int) *Item {
	return &Item{Name: name, Weight: weight}
}

// View returns the structured representation of the item.
func (i *Item) View() ItemView {
	return ItemView{Name: i.Name, Weight: i.Weight}
}

// String returns the display form "<name> (<weight> grams)".
func (i *Item) String() string {
	return fmt.Sprintf("%s (%d grams)", i.Name, i.Weight)
}

// Label returns the display form in the catalog's language. The weight is
// passed preformatted so the printer never adds digit grouping.
func (i *Item) Label(c *i18n.Catalog) string {
	return c.Text(i18n.ItemLabel, i.Name, strconv.Itoa(i.Weight))
}
