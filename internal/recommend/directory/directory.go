// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package directory maps classifier output to location groups.
//
// A Directory combines the label encoder (group id to group label, the
// sorted label list produced at training time) with the group table (label
// to ordered locations). Both are immutable once built, so a Directory is
// safe for concurrent reads.
package directory

import (
	"errors"
	"fmt"

	"github.com/tomtom215/timelytourist/internal/recommend/errdefs"
)

// Location is one recommendable place.
type Location struct {
	Name    string `json:"name"`
	PlaceID string `json:"place_id,omitempty"`
}

// Group is a labelled, ordered list of locations.
type Group struct {
	Label     string     `json:"label"`
	Locations []Location `json:"locations"`
}

// Directory is the read-only group lookup.
type Directory struct {
	labels  []string
	groups  []Group
	byLabel map[string]int
}

// New validates and indexes the label encoder classes and the group table.
// Every label must have a group entry; groups keep the order given.
func New(labels []string, groups []Group) (*Directory, error) {
	if len(labels) == 0 {
		return nil, errors.New("label encoder has no classes")
	}

	d := &Directory{
		labels:  append([]string(nil), labels...),
		groups:  make([]Group, len(groups)),
		byLabel: make(map[string]int, len(groups)),
	}

	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return nil, fmt.Errorf("label encoder repeats class %q", l)
		}
		seen[l] = struct{}{}
	}

	for i, g := range groups {
		if _, dup := d.byLabel[g.Label]; dup {
			return nil, fmt.Errorf("group %q listed twice", g.Label)
		}
		d.byLabel[g.Label] = i
		d.groups[i] = Group{
			Label:     g.Label,
			Locations: append([]Location(nil), g.Locations...),
		}
	}

	for _, l := range labels {
		if _, ok := d.byLabel[l]; !ok {
			return nil, fmt.Errorf("label %q has no group entry", l)
		}
	}

	return d, nil
}

// ResolveLabel returns the group label for a classifier group id.
func (d *Directory) ResolveLabel(id int) (string, error) {
	if id < 0 || id >= len(d.labels) {
		return "", fmt.Errorf("%w: id %d outside trained range [0, %d)", errdefs.ErrUnknownGroup, id, len(d.labels))
	}
	return d.labels[id], nil
}

// LocationsFor returns the locations of a group in stored order. An unknown
// or empty group yields an empty slice.
func (d *Directory) LocationsFor(label string) []Location {
	i, ok := d.byLabel[label]
	if !ok {
		return []Location{}
	}
	return append([]Location{}, d.groups[i].Locations...)
}

// SimilarTo scans groups in stored order and returns up to k locations from
// the first group containing name, skipping every entry named name.
func (d *Directory) SimilarTo(name string, k int) []Location {
	out := []Location{}
	if k <= 0 {
		return out
	}

	for _, g := range d.groups {
		if !contains(g.Locations, name) {
			continue
		}
		for _, loc := range g.Locations {
			if loc.Name == name {
				continue
			}
			out = append(out, loc)
			if len(out) == k {
				break
			}
		}
		return out
	}
	return out
}

func contains(locs []Location, name string) bool {
	for _, l := range locs {
		if l.Name == name {
			return true
		}
	}
	return false
}

// Labels returns a copy of the label encoder classes in id order.
func (d *Directory) Labels() []string {
	return append([]string(nil), d.labels...)
}

// GroupCount is the number of groups in the table.
func (d *Directory) GroupCount() int {
	return len(d.groups)
}

// LocationCount is the total number of location entries across groups.
func (d *Directory) LocationCount() int {
	n := 0
	for _, g := range d.groups {
		n += len(g.Locations)
	}
	return n
}
