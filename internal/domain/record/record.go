// Package record holds the read-only knowledge-base record shapes.
// Records are loaded from external sources (NAS filesystem or Redis)
// and never written by this service.
package record

// Company is a customer company with its ordered products.
type Company struct {
	ID        string
	Name      string
	ShortName string
	Products  []Product
}

// DisplayName returns the short name when present, otherwise the full name.
func (c Company) DisplayName() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	return c.Name
}

// Product is a catalog entry with its associated drawing numbers.
type Product struct {
	ID          string
	Name        string
	Category    string
	Description string
	Drawings    []string
}

// Drawing is the metadata of a single work-instruction record.
type Drawing struct {
	DrawingNumber  string
	Title          string
	CompanyID      string
	MachineTypes   []string
	Difficulty     string
	EstimatedTime  string
	ToolsRequired  []string
	StepsByMachine map[string][]WorkStep
}

// StepCount sums work steps across all machine-type groupings.
func (d Drawing) StepCount() int {
	n := 0
	for _, steps := range d.StepsByMachine {
		n += len(steps)
	}
	return n
}

// WorkStep is a single step of a work instruction.
type WorkStep struct {
	StepNumber  int
	Title       string
	Description string
}

// Contribution is a free-text community annotation attached to a drawing.
type Contribution struct {
	DrawingNumber string
	UserName      string
	Text          string
	Type          string
	Timestamp     string
}
