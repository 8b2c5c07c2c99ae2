package render

// Filter transforms an ordered sequence of text lines. For content stages
// the input is the stage's raw domain input (log lines, metadata values,
// "kind: path" entries, diff lines); the final filter's output is written
// verbatim, so filters are responsible for any escaping the document needs.
type Filter func(lines []string) []string

// FilterChain is a per-stage registry of ordered filters. Registration
// happens before rendering begins; the chain is read-only while a render is
// in flight and may be reused across sequential invocations.
type FilterChain struct {
	filters map[Stage][]Filter
}

// NewFilterChain returns an empty chain.
func NewFilterChain() *FilterChain {
	return &FilterChain{filters: make(map[Stage][]Filter)}
}

// Register appends a filter for the given stage. Filters run in registration
// order, each consuming the previous one's output.
func (c *FilterChain) Register(stage Stage, f Filter) {
	if f == nil {
		return
	}
	c.filters[stage] = append(c.filters[stage], f)
}

// Registered reports whether any filter is registered for the stage.
func (c *FilterChain) Registered(stage Stage) bool {
	return c != nil && len(c.filters[stage]) > 0
}

// Apply feeds lines through the stage's filters in registration order.
// Callers must check Registered first: for content stages there is no no-op
// fallback here, the renderer runs different built-in logic instead.
func (c *FilterChain) Apply(stage Stage, lines []string) []string {
	for _, f := range c.filters[stage] {
		lines = f(lines)
	}
	return lines
}
