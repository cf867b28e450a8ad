package student

import (
	"context"
	"fmt"

	"github.com/eugenenazirov/schoolbag/internal/bag"
	"github.com/eugenenazirov/schoolbag/internal/console"
	"github.com/eugenenazirov/schoolbag/internal/opener"
	"github.com/eugenenazirov/schoolbag/internal/report"
)

// Student owns exactly one bag for its whole lifetime.
type Student struct {
	name string
	bag  *bag.Bag
}

// ExportResult describes a completed export. OpenErr is informational: the
// report was saved even when the viewer could not be started.
type ExportResult struct {
	Location string
	Opened   bool
	OpenErr  error
}

// New creates a student with a bag built from opts.
func New(name string, opts ...bag.Option) (*Student, error) {
	b, err := bag.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create bag: %w", err)
	}
	return &Student{name: name, bag: b}, nil
}

// Name returns the student's name.
func (s *Student) Name() string {
	return s.name
}

// Bag returns the student's bag.
func (s *Student) Bag() *bag.Bag {
	return s.bag
}

// Pack adds item to the bag. See bag.Bag.Add.
func (s *Student) Pack(item *bag.Item) error {
	return s.bag.Add(item)
}

// Unpack removes item from the bag. See bag.Bag.Remove.
func (s *Student) Unpack(item *bag.Item) bool {
	return s.bag.Remove(item)
}

// ShowBag prints the bag contents, total weight and status summary.
func (s *Student) ShowBag(c *console.Console) {
	c.Bag(s.name, s.bag)
}

// Report returns the exported view of the student.
func (s *Student) Report() report.Report {
	return report.Report{
		Student: s.name,
		Bag:     s.bag.Snapshot(),
	}
}

// Export saves the report to store and then asks op to open it. A nil op skips opening.
func (s *Student) Export(ctx context.Context, store report.Store, op opener.Opener) (ExportResult, error) {
	if err := store.Save(s.Report()); err != nil {
		return ExportResult{}, fmt.Errorf("save report: %w", err)
	}

	result := ExportResult{Location: store.Location()}
	if op == nil {
		return result, nil
	}
	if err := op.Open(ctx, result.Location); err != nil {
		result.OpenErr = err
		return result, nil
	}
	result.Opened = true
	return result, nil
}
