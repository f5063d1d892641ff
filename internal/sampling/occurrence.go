package sampling

import "entgraph/internal/ibytes"

// Counter tallies per-chunk occurrence percentages for named groups of
// byte values. Groups are evaluated independently: a byte value listed in
// two groups counts towards both, so summed percentages across
// overlapping groups may exceed 100.
type Counter struct {
	groups []countGroup
}

type countGroup struct {
	name   string
	values []int
}

// NewCounter builds a Counter from a validated spec. Groups are ordered
// by sorted name so that series output is deterministic.
func NewCounter(spec ibytes.Spec) *Counter {
	names := spec.Names()
	groups := make([]countGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, countGroup{name: name, values: spec[name]})
	}
	return &Counter{groups: groups}
}

// Names returns the group names in the order Percentages reports them.
func (c *Counter) Names() []string {
	names := make([]string, len(c.groups))
	for i, g := range c.groups {
		names[i] = g.name
	}
	return names
}

// Percentages returns, for each group in Names order, the percentage of
// bytes in chunk whose value belongs to that group. A group with no
// matches yields 0.
func (c *Counter) Percentages(chunk []byte) []float64 {
	out := make([]float64, len(c.groups))
	if len(chunk) == 0 {
		return out
	}

	var counts [256]int
	for _, b := range chunk {
		counts[b]++
	}

	for i, g := range c.groups {
		occurrence := 0
		for _, v := range g.values {
			occurrence += counts[v]
		}
		out[i] = float64(occurrence) / float64(len(chunk)) * 100
	}
	return out
}
