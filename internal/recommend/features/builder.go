// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package features

// SchemaBuilder collects identifiers from dataset rows in first-appearance
// order per axis, the same order used when the classifier was trained.
// Distinct raw values that normalize to the same identifier are kept as
// separate entries so Build reports the collision.
type SchemaBuilder struct {
	perAxis map[Axis][]string
	seen    map[Axis]map[string]struct{}
	count   int
}

// NewSchemaBuilder returns an empty builder.
func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{
		perAxis: make(map[Axis][]string, len(Axes)),
		seen:    make(map[Axis]map[string]struct{}, len(Axes)),
	}
}

// Observe records a raw value for axis. Blank values are ignored.
func (b *SchemaBuilder) Observe(axis Axis, value string) {
	if value == "" {
		return
	}
	values, ok := b.seen[axis]
	if !ok {
		values = make(map[string]struct{})
		b.seen[axis] = values
	}
	if _, dup := values[value]; dup {
		return
	}
	values[value] = struct{}{}
	b.perAxis[axis] = append(b.perAxis[axis], Identifier(axis, value))
	b.count++
}

// Identifiers returns the collected identifiers grouped by axis in Axes
// order.
func (b *SchemaBuilder) Identifiers() []string {
	out := make([]string, 0, b.count)
	for _, axis := range Axes {
		out = append(out, b.perAxis[axis]...)
	}
	return out
}

// Build returns the schema for everything observed so far.
func (b *SchemaBuilder) Build() (*Schema, error) {
	return NewSchema(b.Identifiers())
}
