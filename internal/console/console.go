package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eugenenazirov/schoolbag/internal/bag"
	"github.com/eugenenazirov/schoolbag/internal/i18n"
	"github.com/eugenenazirov/schoolbag/internal/report"
)

// Console prints human-readable progress. Colours are dropped when out is not a terminal.
type Console struct {
	out     io.Writer
	catalog *i18n.Catalog

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
}

// New returns a Console writing to out in the catalog's language.
func New(out io.Writer, catalog *i18n.Catalog) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:     out,
		catalog: catalog,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		title:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Catalog returns the catalog used for rendering.
func (c *Console) Catalog() *i18n.Catalog {
	return c.catalog
}

// Packed renders the outcome of adding item: nil means it was added.
func (c *Console) Packed(item *bag.Item, err error) {
	if err == nil {
		c.println(c.success, c.catalog.Text(i18n.ItemAdded, item.Name))
		return
	}
	var capErr *bag.CapacityError
	if errors.As(err, &capErr) {
		c.println(c.failure, c.catalog.Text(i18n.BagFull, capErr.Item.Name, strconv.Itoa(capErr.Capacity)))
		return
	}
	c.println(c.failure, err.Error())
}

// Unpacked renders the outcome of removing an item by name.
func (c *Console) Unpacked(name string, removed bool) {
	if removed {
		c.println(c.muted, c.catalog.Text(i18n.ItemRemoved, name))
		return
	}
	c.println(c.warning, c.catalog.Text(i18n.ItemNotFound, name))
}

// Mandatory renders a mandatory-item check.
func (c *Console) Mandatory(check bag.MandatoryCheck) {
	if check.Complete() {
		c.println(c.success, c.catalog.Text(i18n.MandatoryComplete))
		return
	}
	c.println(c.warning, c.catalog.Text(i18n.MandatoryMissing, strings.Join(check.Missing, ", ")))
}

// Bag prints the roster, the total weight and the status summary.
func (c *Console) Bag(student string, b *bag.Bag) {
	items := b.Items()
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label(c.catalog))
	}
	c.println(c.title, c.catalog.Text(i18n.StudentRoster, student, strings.Join(labels, ", ")))
	c.println(c.muted, c.catalog.Text(i18n.StudentTotalWeight, strconv.Itoa(b.CurrentWeight())))
	c.status(b.Status())
}

// Exported renders the result of an export. openErr is shown as a notice only.
func (c *Console) Exported(location string, opened bool, openErr error) {
	if opened {
		c.println(c.success, c.catalog.Text(i18n.ExportOpened, location))
	} else {
		c.println(c.success, c.catalog.Text(i18n.ExportComplete, location))
	}
	if openErr != nil {
		c.println(c.warning, c.catalog.Text(i18n.ExportOpenFailed, location, openErr.Error()))
	}
}

// Report prints a previously exported report.
func (c *Console) Report(r report.Report) {
	c.println(c.title, c.catalog.Text(i18n.InspectHeader, r.Student))
	labels := make([]string, 0, len(r.Bag.Items))
	for _, view := range r.Bag.Items {
		labels = append(labels, c.catalog.Text(i18n.ItemLabel, view.Name, strconv.Itoa(view.Weight)))
	}
	c.println(c.title, c.catalog.Text(i18n.StudentRoster, r.Student, strings.Join(labels, ", ")))
	c.println(c.muted, c.catalog.Text(i18n.StudentTotalWeight, strconv.Itoa(r.Bag.TotalWeight)))
	c.Mandatory(bag.MandatoryCheck{Missing: r.Bag.MissingMandatory})
	for _, line := range strings.Split(r.Bag.StatusSummary, "\n") {
		c.println(c.muted, line)
	}
}

func (c *Console) status(s bag.Status) {
	lines := s.Lines(c.catalog)
	style := c.failure
	switch s.Tier() {
	case bag.TierComplete:
		style = c.success
	case bag.TierPartial:
		style = c.warning
	}
	c.println(c.muted, lines[0])
	c.println(c.muted, lines[1])
	c.println(style, lines[2])
}

func (c *Console) println(style lipgloss.Style, msg string) {
	fmt.Fprintln(c.out, style.Render(msg))
}
