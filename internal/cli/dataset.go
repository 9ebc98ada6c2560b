// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/timelytourist/internal/recommend/directory"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
	"github.com/tomtom215/timelytourist/internal/recommend/storage"
)

// Dataset column headers beyond the preference axes.
const (
	ColumnLocation = "Location"
	ColumnPlaceID  = "Place ID"
)

// groupColumns form a row's group label, in directory.GroupLabel order.
var groupColumns = []string{
	string(features.AxisPersonalityTraits),
	string(features.AxisTourismCategory),
	string(features.AxisTravellingConcerns),
}

// ErrEmptyDataset is returned when no usable rows remain after cleanup.
var ErrEmptyDataset = errors.New("dataset has no rows")

// DatasetStats summarises a metadata build.
type DatasetStats struct {
	Rows        int `json:"rows"`
	DroppedRows int `json:"dropped_rows"`
	FilledCells int `json:"filled_cells"`
	Features    int `json:"features"`
	Groups      int `json:"groups"`
	Locations   int `json:"locations"`
}

type table struct {
	columns map[string]int
	rows    [][]string
}

func (t *table) has(col string) bool {
	_, ok := t.columns[col]
	return ok
}

func (t *table) cell(row []string, col string) string {
	return row[t.columns[col]]
}

// BuildMetadata turns a dataset CSV into the metadata artifact payload.
//
// Fully empty rows and columns are dropped, remaining blank cells take the
// column's most frequent value (ties go to the lexically smallest), and
// feature identifiers are collected per axis in first-appearance order.
// Label classes are sorted; each group lists its locations in row order.
func BuildMetadata(r io.Reader) (*storage.MetadataPayload, DatasetStats, error) {
	var stats DatasetStats

	t, dropped, err := readTable(r)
	if err != nil {
		return nil, stats, err
	}
	stats.DroppedRows = dropped
	stats.Rows = len(t.rows)

	for _, col := range append(append([]string{}, groupColumns...), ColumnLocation) {
		if !t.has(col) {
			return nil, stats, fmt.Errorf("dataset is missing column %q", col)
		}
	}

	stats.FilledCells = fillWithMode(t)

	sb := features.NewSchemaBuilder()
	for _, axis := range features.Axes {
		if !t.has(string(axis)) {
			continue
		}
		for _, row := range t.rows {
			sb.Observe(axis, t.cell(row, string(axis)))
		}
	}
	schema, err := sb.Build()
	if err != nil {
		return nil, stats, fmt.Errorf("build feature schema: %w", err)
	}

	builder := directory.NewBuilder()
	for _, row := range t.rows {
		loc := directory.Location{Name: t.cell(row, ColumnLocation)}
		if t.has(ColumnPlaceID) {
			loc.PlaceID = t.cell(row, ColumnPlaceID)
		}
		builder.Add(directory.GroupLabel(
			t.cell(row, groupColumns[0]),
			t.cell(row, groupColumns[1]),
			t.cell(row, groupColumns[2]),
		), loc)
	}
	dir, err := builder.Build()
	if err != nil {
		return nil, stats, fmt.Errorf("build location directory: %w", err)
	}

	labels := dir.Labels()
	groups := make([]storage.GroupPayload, 0, len(labels))
	for _, label := range labels {
		locs := dir.LocationsFor(label)
		payload := storage.GroupPayload{Label: label, Locations: make([]storage.LocationPayload, 0, len(locs))}
		for _, l := range locs {
			payload.Locations = append(payload.Locations, storage.LocationPayload{Name: l.Name, PlaceID: l.PlaceID})
		}
		groups = append(groups, payload)
		stats.Locations += len(locs)
	}

	stats.Features = schema.Width()
	stats.Groups = len(groups)

	return &storage.MetadataPayload{
		FeatureColumns: schema.Identifiers(),
		LabelClasses:   labels,
		Groups:         groups,
	}, stats, nil
}

// readTable parses the CSV, trims cells, and drops fully empty rows and
// columns. It reports how many rows were dropped.
func readTable(r io.Reader) (*table, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, ErrEmptyDataset
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read dataset header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	dropped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read dataset: %w", err)
		}

		row := make([]string, len(header))
		empty := true
		for i := range row {
			if i < len(record) {
				row[i] = strings.TrimSpace(record[i])
			}
			if row[i] != "" {
				empty = false
			}
		}
		if empty {
			dropped++
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, dropped, ErrEmptyDataset
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := columns[name]; dup {
			return nil, dropped, fmt.Errorf("dataset has duplicate column %q", name)
		}
		populated := false
		for _, row := range rows {
			if row[i] != "" {
				populated = true
				break
			}
		}
		if populated {
			columns[name] = i
		}
	}

	return &table{columns: columns, rows: rows}, dropped, nil
}

// fillWithMode replaces blank cells with their column's mode and returns
// the number of cells filled.
func fillWithMode(t *table) int {
	filled := 0
	for _, idx := range t.columns {
		counts := make(map[string]int)
		for _, row := range t.rows {
			if v := row[idx]; v != "" {
				counts[v]++
			}
		}
		mode, best := "", 0
		for v, n := range counts {
			if n > best || (n == best && v < mode) {
				mode, best = v, n
			}
		}
		for _, row := range t.rows {
			if row[idx] == "" {
				row[idx] = mode
				filled++
			}
		}
	}
	return filled
}
