// Package ibytes defines the "interesting bytes" specification: named
// groups of byte values whose per-chunk occurrence rate is tracked
// alongside entropy. Byte values are decimals, not hex.
package ibytes

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Spec maps a group name to the byte values belonging to that group.
// A valid spec has a non-empty name and at least one value in [0, 255]
// for every group. An empty spec disables occurrence tracking.
type Spec map[string][]int

// ConfigError reports a malformed or semantically invalid interesting-bytes
// document. It is always produced before any file I/O begins.
type ConfigError struct {
	// Group is the offending group name, empty if the whole document is
	// at fault.
	Group  string
	Detail string
	// Err is the underlying decode error, if any.
	Err error
}

func (e *ConfigError) Error() string {
	msg := "invalid interesting-bytes spec"
	if e.Group != "" {
		msg += fmt.Sprintf(" (group %q)", e.Group)
	}
	msg += ": " + e.Detail
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Parse decodes a JSON document of the form {"name": [0, 144, ...]} into a
// validated Spec. "{}" yields an empty spec.
//
// Duplicate group names follow JSON object semantics: the last definition
// of a name wins.
func Parse(text string) (Spec, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &ConfigError{Detail: fmt.Sprintf("cannot decode document %q", text), Err: err}
	}

	spec := make(Spec, len(raw))
	for name, value := range raw {
		var numbers []json.Number
		if err := json.Unmarshal(value, &numbers); err != nil {
			return nil, &ConfigError{Group: name, Detail: fmt.Sprintf("value %s is not a list of integers", value), Err: err}
		}
		values := make([]int, 0, len(numbers))
		for _, n := range numbers {
			v, err := n.Int64()
			if err != nil {
				return nil, &ConfigError{Group: name, Detail: fmt.Sprintf("value %s is not an integer", n), Err: err}
			}
			values = append(values, int(v))
		}
		spec[name] = values
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks the semantic invariants of the spec: non-empty group
// names, at least one value per group, all values in [0, 255].
func (s Spec) Validate() error {
	for _, name := range s.Names() {
		if name == "" {
			return &ConfigError{Detail: "group name must not be empty"}
		}
		values := s[name]
		if len(values) == 0 {
			return &ConfigError{Group: name, Detail: "group has no byte values"}
		}
		for _, v := range values {
			if v < 0 || v > 255 {
				return &ConfigError{Group: name, Detail: fmt.Sprintf("byte value %d out of range [0, 255]", v)}
			}
		}
	}
	return nil
}

// Names returns the group names in sorted order, so that iteration over
// the spec is deterministic.
func (s Spec) Names() []string {
	names := maps.Keys(s)
	slices.Sort(names)
	return names
}

// Default returns the byte groups tracked when the caller supplies none:
// NUL bytes, printable ASCII and a small exploit marker group.
func Default() Spec {
	printable := make([]int, 0, 95)
	for b := 32; b <= 126; b++ {
		printable = append(printable, b)
	}
	return Spec{
		"0's":             {0},
		"Printable ASCII": printable,
		"Exploit":         {44, 144},
	}
}
