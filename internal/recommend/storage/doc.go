// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package storage persists the artifacts the inference engine is built from.
//
// The offline training job produces three artifacts, each stored under its
// own kind so it can be versioned independently:
//
//   - metadata: feature schema, label encoder classes, and the group table
//   - scaler: fitted standardization means and scales
//   - classifier: classes and dense layer weights of the trained network
//
// # Storage Format
//
// Each artifact version is one gzip-compressed JSON envelope:
//
//	filename: {kind}_v{version}.json.gz
//
//	{
//	  "metadata": { "kind": "scaler", "version": 3, "checksum": "...", ... },
//	  "payload":  { ...kind-specific document... }
//	}
//
// The checksum is the SHA-256 of the payload bytes as written. Load
// recomputes it and refuses a payload that does not match, so a truncated
// or hand-edited artifact fails engine startup instead of producing wrong
// recommendations.
//
// # Usage Example
//
//	store, err := storage.NewStore("/var/lib/timelytourist/artifacts")
//	if err != nil {
//	    return err
//	}
//
//	var scaler storage.ScalerPayload
//	meta, err := store.Load(ctx, storage.KindScaler, 0, &scaler) // 0 = latest
//	if err != nil {
//	    return err
//	}
//
// # Directory Structure
//
//	/var/lib/timelytourist/artifacts/
//	  metadata_v1.json.gz
//	  metadata_v2.json.gz     <- latest
//	  scaler_v1.json.gz
//	  classifier_v1.json.gz
//
// # Thread Safety
//
// All store operations are safe for concurrent use. Save, Delete, and Prune
// take the write lock; Load and List share the read lock.
package storage
