package bag

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eugenenazirov/schoolbag/internal/i18n"
)

// DefaultCapacity is the number of items a bag holds unless configured otherwise.
const DefaultCapacity = 6

// pen, notebook, book
var defaultMandatory = []string{"עט", "מחברת", "ספר"}

// DefaultMandatory returns a copy of the default mandatory item names.
func DefaultMandatory() []string {
	return slices.Clone(defaultMandatory)
}

// Bag holds items in packing order. It is not safe for concurrent use.
type Bag struct {
	items     []*Item
	capacity  int
	mandatory []string
	catalog   *i18n.Catalog
	lower     cases.Caser
}

// Option configures a Bag at construction.
type Option func(*Bag)

// WithCapacity overrides DefaultCapacity.
func WithCapacity(n int) Option {
	return func(b *Bag) {
		b.capacity = n
	}
}

// WithMandatory replaces the mandatory item names.
func WithMandatory(names ...string) Option {
	return func(b *Bag) {
		b.mandatory = slices.Clone(names)
	}
}

// WithItems sets the initial contents. New rejects more items than the capacity allows.
func WithItems(items ...*Item) Option {
	return func(b *Bag) {
		b.items = slices.Clone(items)
	}
}

// WithCatalog selects the language of the status summary.
func WithCatalog(c *i18n.Catalog) Option {
	return func(b *Bag) {
		b.catalog = c
	}
}

// New builds an empty bag with DefaultCapacity and the default mandatory items unless overridden.
func New(opts ...Option) (*Bag, error) {
	b := &Bag{
		capacity:  DefaultCapacity,
		mandatory: DefaultMandatory(),
		lower:     cases.Lower(language.Und),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if len(b.items) > b.capacity {
		return nil, ErrOverCapacity
	}
	if b.catalog == nil {
		b.catalog = i18n.English()
	}
	return b, nil
}

// Add appends item when there is room, otherwise returns a *CapacityError and leaves the bag unchanged.
func (b *Bag) Add(item *Item) error {
	if len(b.items) >= b.capacity {
		return &CapacityError{Item: item, Capacity: b.capacity}
	}
	b.items = append(b.items, item)
	return nil
}

// Remove drops the first occurrence of item (pointer identity) and reports whether it was present.
func (b *Bag) Remove(item *Item) bool {
	idx := slices.Index(b.items, item)
	if idx < 0 {
		return false
	}
	b.items = slices.Delete(b.items, idx, idx+1)
	return true
}

// Find returns the first item named exactly name, or nil.
func (b *Bag) Find(name string) *Item {
	for _, item := range b.items {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// Has reports whether any item name contains query, ignoring case.
// Matching is by substring, so "pen" also matches "sharpener".
func (b *Bag) Has(query string) bool {
	q := b.lower.String(query)
	for _, item := range b.items {
		if strings.Contains(b.lower.String(item.Name), q) {
			return true
		}
	}
	return false
}

// CurrentWeight sums the weights of the items currently in the bag.
func (b *Bag) CurrentWeight() int {
	total := 0
	for _, item := range b.items {
		total += item.Weight
	}
	return total
}

// Missing returns the mandatory names not matched by any item, in mandatory order.
func (b *Bag) Missing() []string {
	missing := make([]string, 0, len(b.mandatory))
	for _, name := range b.mandatory {
		if !b.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// CheckMandatory reports which mandatory items are missing.
func (b *Bag) CheckMandatory() MandatoryCheck {
	return MandatoryCheck{Missing: b.Missing()}
}

// Items returns the items in packing order.
func (b *Bag) Items() []*Item {
	return slices.Clone(b.items)
}

// Len returns the number of packed items.
func (b *Bag) Len() int {
	return len(b.items)
}

// Capacity returns the maximum number of items.
func (b *Bag) Capacity() int {
	return b.capacity
}

// Mandatory returns the mandatory item names.
func (b *Bag) Mandatory() []string {
	return slices.Clone(b.mandatory)
}

// Snapshot returns the structured view persisted by reports.
func (b *Bag) Snapshot() Snapshot {
	views := make([]ItemView, 0, len(b.items))
	for _, item := range b.items {
		views = append(views, item.View())
	}
	return Snapshot{
		Items:            views,
		TotalWeight:      b.CurrentWeight(),
		MissingMandatory: b.Missing(),
		StatusSummary:    b.StatusSummary(),
	}
}

// Snapshot is the exported form of a bag.
type Snapshot struct {
	Items            []ItemView `json:"items"`
	TotalWeight      int        `json:"total_weight"`
	MissingMandatory []string   `json:"missing_mandatory"`
	StatusSummary    string     `json:"status_summary"`
}

// MandatoryCheck is the outcome of comparing a bag against its mandatory items.
type MandatoryCheck struct {
	Missing []string
}

// Complete reports whether nothing is missing.
func (c MandatoryCheck) Complete() bool {
	return len(c.Missing) == 0
}
