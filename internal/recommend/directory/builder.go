// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package directory

import "sort"

// Builder accumulates dataset rows into a directory. Labels are sorted the
// way the label encoder sorted them at training time; locations keep row
// order within their group.
type Builder struct {
	groups map[string][]Location
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{groups: make(map[string][]Location)}
}

// Add appends loc to the group with the given label.
func (b *Builder) Add(label string, loc Location) {
	b.groups[label] = append(b.groups[label], loc)
}

// Labels returns the sorted group labels.
func (b *Builder) Labels() []string {
	labels := make([]string, 0, len(b.groups))
	for l := range b.groups {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Groups returns the groups in label order.
func (b *Builder) Groups() []Group {
	labels := b.Labels()
	out := make([]Group, 0, len(labels))
	for _, l := range labels {
		out = append(out, Group{Label: l, Locations: append([]Location(nil), b.groups[l]...)})
	}
	return out
}

// Build returns the finished directory.
func (b *Builder) Build() (*Directory, error) {
	return New(b.Labels(), b.Groups())
}

// GroupLabel is the label a dataset row is grouped under.
func GroupLabel(personality, category, concerns string) string {
	return personality + "_" + category + "_" + concerns
}
