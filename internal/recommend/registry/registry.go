// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package registry keeps a durable history of which artifact versions the
// engine was started with.
//
// Every successful engine load is recorded as an Activation in BadgerDB.
// The history answers "which model was serving at time T" after the fact,
// and lets operators confirm that a restart picked up the artifacts they
// expected.
//
// Keys sort by activation time:
//
//	activation:{unix_nanos, 20 digits}:{uuid}
//
// so the newest activation is found with a single reverse seek.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const activationKeyPrefix = "activation:"

// ErrNotFound is returned by Latest when nothing has been recorded.
var ErrNotFound = errors.New("no activation recorded")

// ArtifactRef identifies one artifact version.
type ArtifactRef struct {
	Kind     string `json:"kind"`
	Version  int    `json:"version"`
	Checksum string `json:"checksum"`
}

// Activation is one successful engine load.
type Activation struct {
	ID            string        `json:"id"`
	ActivatedAt   time.Time     `json:"activated_at"`
	Artifacts     []ArtifactRef `json:"artifacts"`
	FeatureCount  int           `json:"feature_count"`
	GroupCount    int           `json:"group_count"`
	LocationCount int           `json:"location_count"`
}

// Registry is the BadgerDB-backed activation history.
type Registry struct {
	db     *badger.DB
	retain int
}

// Options configures a registry.
type Options struct {
	// Path is the BadgerDB directory. Empty opens an in-memory database.
	Path string

	// Retain caps the number of stored activations. Zero keeps everything.
	Retain int
}

// Open opens (or creates) the registry database.
func Open(opts Options) (*Registry, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.Path == "" {
		bopts = bopts.WithInMemory(true)
	}
	bopts.Logger = nil // Suppress BadgerDB internal logs
	// Activation records are tiny
	bopts.ValueLogFileSize = 16 << 20
	bopts.SyncWrites = true

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open activation registry: %w", err)
	}

	return &Registry{db: db, retain: opts.Retain}, nil
}

// Close releases the database.
func (r *Registry) Close() error {
	return r.db.Close()
}

func activationKey(a *Activation) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", activationKeyPrefix, a.ActivatedAt.UnixNano(), a.ID))
}

// Record stores an activation, filling in ID and ActivatedAt when unset,
// then trims the history to the retention limit.
func (r *Registry) Record(ctx context.Context, a *Activation) error {
	if a == nil {
		return errors.New("activation cannot be nil")
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.ActivatedAt.IsZero() {
		a.ActivatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal activation: %w", err)
	}

	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(activationKey(a), data)
	}); err != nil {
		return fmt.Errorf("record activation: %w", err)
	}

	if r.retain > 0 {
		if _, err := r.trim(r.retain); err != nil {
			return fmt.Errorf("trim activation history: %w", err)
		}
	}
	return nil
}

// Latest returns the most recent activation.
func (r *Registry) Latest(ctx context.Context) (*Activation, error) {
	history, err := r.History(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	return &history[0], nil
}

// History returns up to limit activations, newest first. A limit of zero
// or less returns everything.
func (r *Registry) History(ctx context.Context, limit int) ([]Activation, error) {
	out := []Activation{}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(activationKeyPrefix)
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var a Activation
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &a)
			}); err != nil {
				// Corrupted entry
				continue
			}
			out = append(out, a)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read activation history: %w", err)
	}
	return out, nil
}

// trim deletes all but the newest keep activations and reports how many
// were removed.
func (r *Registry) trim(keep int) (int, error) {
	var stale [][]byte

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(activationKeyPrefix)
		seek := append(append([]byte{}, prefix...), 0xFF)
		seen := 0
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			seen++
			if seen > keep {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(stale), nil
}

// gcDiscardRatio is the fraction of a value log file that must be stale
// before it is rewritten.
const gcDiscardRatio = 0.5

// RunGC reclaims value log space until no file is worth rewriting.
// In-memory registries have no value log and return nil.
func (r *Registry) RunGC() error {
	for {
		err := r.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return nil
		default:
			return fmt.Errorf("registry value log gc: %w", err)
		}
	}
}
