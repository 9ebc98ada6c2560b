// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package storage

// Artifact kinds.
const (
	KindMetadata   = "metadata"
	KindScaler     = "scaler"
	KindClassifier = "classifier"
)

// Kinds lists every artifact kind the engine needs.
var Kinds = []string{KindMetadata, KindScaler, KindClassifier}

// MetadataPayload is the feature schema, label encoder, and group table.
type MetadataPayload struct {
	// FeatureColumns is the ordered feature identifier list.
	FeatureColumns []string `json:"feature_columns"`

	// LabelClasses maps group id (the index) to group label.
	LabelClasses []string `json:"label_classes"`

	// Groups is the group table in stored order.
	Groups []GroupPayload `json:"groups"`
}

// GroupPayload is one labelled group of locations.
type GroupPayload struct {
	Label     string            `json:"label"`
	Locations []LocationPayload `json:"locations"`
}

// LocationPayload is one location entry.
type LocationPayload struct {
	Name    string `json:"name"`
	PlaceID string `json:"place_id,omitempty"`
}

// ScalerPayload is a fitted standardization transform.
type ScalerPayload struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ClassifierPayload is a trained dense network.
type ClassifierPayload struct {
	// Classes maps output unit index to group id.
	Classes []int `json:"classes"`

	// Layers are applied in order; Weights is indexed [input][output].
	Layers []LayerPayload `json:"layers"`

	// HiddenActivation applies between layers. Defaults to relu.
	HiddenActivation string `json:"hidden_activation,omitempty"`

	// OutputActivation is informational; prediction uses argmax.
	OutputActivation string `json:"output_activation,omitempty"`
}

// LayerPayload is one dense layer.
type LayerPayload struct {
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}
