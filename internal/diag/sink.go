package diag

// Sink receives diagnostics from record producers and the resolution
// engine. Producers only append; nothing branches on sink state while a
// batch is being resolved.
type Sink interface {
	Report(d Diagnostic)
	HasErrors() bool
	HasWarnings() bool
	Errors() []string
	Warnings() []string
}

// Discard drops every diagnostic. Use it for best-effort runs.
type Discard struct{}

func (Discard) Report(Diagnostic)  {}
func (Discard) HasErrors() bool    { return false }
func (Discard) HasWarnings() bool  { return false }
func (Discard) Errors() []string   { return nil }
func (Discard) Warnings() []string { return nil }

// Collector keeps every diagnostic in report order.
type Collector struct {
	diagnostics []Diagnostic
	errors      int
	warnings    int
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
	switch d.Severity() {
	case SeverityError:
		c.errors++
	case SeverityWarning:
		c.warnings++
	}
}

func (c *Collector) HasErrors() bool {
	return c.errors > 0
}

func (c *Collector) HasWarnings() bool {
	return c.warnings > 0
}

func (c *Collector) Errors() []string {
	return c.texts(SeverityError)
}

func (c *Collector) Warnings() []string {
	return c.texts(SeverityWarning)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), c.diagnostics...)
}

// Count returns how many diagnostics of kind were reported.
func (c *Collector) Count(kind Kind) int {
	count := 0
	for _, d := range c.diagnostics {
		if d.Kind == kind {
			count++
		}
	}
	return count
}

func (c *Collector) texts(severity Severity) []string {
	var out []string
	for _, d := range c.diagnostics {
		if d.Severity() == severity {
			out = append(out, d.String())
		}
	}
	return out
}

var (
	_ Sink = Discard{}
	_ Sink = (*Collector)(nil)
)
