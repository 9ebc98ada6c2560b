// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const artifactSuffix = ".json.gz"

var (
	// ErrNotFound is returned when no artifact exists for a kind/version.
	ErrNotFound = errors.New("artifact not found")

	// ErrChecksumMismatch is returned when a payload fails verification.
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")
)

// ArtifactMetadata describes one stored artifact version.
type ArtifactMetadata struct {
	// Kind is the artifact kind (metadata, scaler, classifier).
	Kind string `json:"kind"`

	// Version is the artifact version (monotonically increasing).
	Version int `json:"version"`

	// BuiltAt is when the artifact was produced.
	BuiltAt time.Time `json:"built_at"`

	// SavedAt is when the artifact was written to the store.
	SavedAt time.Time `json:"saved_at"`

	// Checksum is the SHA-256 of the payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed file size.
	SizeBytes int64 `json:"size_bytes"`

	// FeatureCount is the vector width the artifact was built for.
	FeatureCount int `json:"feature_count,omitempty"`

	// GroupCount is the number of location groups.
	GroupCount int `json:"group_count,omitempty"`

	// Source names the dataset or job that produced the artifact.
	Source string `json:"source,omitempty"`
}

// envelope is the on-disk format.
type envelope struct {
	Metadata ArtifactMetadata `json:"metadata"`
	Payload  json.RawMessage  `json:"payload"`
}

// Store manages artifact persistence.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version per kind
	versions map[string]int
}

// NewStore creates a store rooted at baseDir, creating the directory if
// needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}

	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan existing artifacts: %w", err)
	}

	return s, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// scan indexes the latest version of every kind on disk.
func (s *Store) scan() error {
	versions, err := s.versionsOnDisk()
	if err != nil {
		return err
	}
	for kind, vs := range versions {
		s.versions[kind] = vs[0]
	}
	return nil
}

// versionsOnDisk returns every stored version per kind, newest first.
func (s *Store) versionsOnDisk() (map[string][]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind, version, ok := parseArtifactFilename(entry.Name())
		if !ok {
			continue
		}
		out[kind] = append(out[kind], version)
	}
	for _, vs := range out {
		sort.Sort(sort.Reverse(sort.IntSlice(vs)))
	}
	return out, nil
}

// parseArtifactFilename splits "scaler_v3.json.gz" into ("scaler", 3).
func parseArtifactFilename(name string) (kind string, version int, ok bool) {
	base, found := strings.CutSuffix(name, artifactSuffix)
	if !found {
		return "", 0, false
	}
	idx := strings.LastIndex(base, "_v")
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(base[idx+2:])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return base[:idx], version, true
}

// Save writes payload as the given kind and version. The checksum, size,
// and save time in meta are filled in by the store.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, kind string, version int, payload interface{}, meta ArtifactMetadata) error {
	if kind == "" || strings.ContainsAny(kind, `/\`) {
		return fmt.Errorf("invalid artifact kind %q", kind)
	}
	if version < 1 {
		return fmt.Errorf("artifact version must be positive, got %d", version)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	hash := sha256.Sum256(raw)
	meta.Checksum = hex.EncodeToString(hash[:])
	meta.Kind = kind
	meta.Version = version
	meta.SavedAt = time.Now().UTC()
	if meta.BuiltAt.IsZero() {
		meta.BuiltAt = meta.SavedAt
	}

	doc, err := json.Marshal(envelope{Metadata: meta, Payload: raw})
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(doc); err != nil {
		return fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to a temp file and rename so readers never see a partial file.
	filename := s.artifactPath(kind, version)
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, compressed.Bytes(), 0o640); err != nil { //nolint:gosec // path built from validated kind
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("commit artifact: %w", err)
	}

	if current, ok := s.versions[kind]; !ok || version > current {
		s.versions[kind] = version
	}

	return nil
}

// Load reads an artifact into target. Version 0 loads the latest version.
func (s *Store) Load(ctx context.Context, kind string, version int, target interface{}) (*ArtifactMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[kind]
		if !ok {
			return nil, fmt.Errorf("%w: no %s artifact", ErrNotFound, kind)
		}
	}

	env, err := s.readEnvelope(kind, version)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(env.Payload)
	if checksum := hex.EncodeToString(hash[:]); checksum != env.Metadata.Checksum {
		return nil, fmt.Errorf("%w: %s v%d expected %s, got %s",
			ErrChecksumMismatch, kind, version, env.Metadata.Checksum, checksum)
	}

	if err := json.Unmarshal(env.Payload, target); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}

	return &env.Metadata, nil
}

func (s *Store) readEnvelope(kind string, version int) (*envelope, error) {
	f, err := os.Open(s.artifactPath(kind, version))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s v%d", ErrNotFound, kind, version)
		}
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	doc, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed artifact: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		return nil, fmt.Errorf("decode artifact envelope: %w", err)
	}
	env.Metadata.SizeBytes = info.Size()
	return &env, nil
}

// LatestVersion returns the newest stored version of kind.
func (s *Store) LatestVersion(kind string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[kind]
	return version, ok
}

// List returns metadata for the latest version of every kind, sorted by
// kind. Unreadable files are skipped.
func (s *Store) List(ctx context.Context) ([]ArtifactMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kinds := make([]string, 0, len(s.versions))
	for kind := range s.versions {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	out := make([]ArtifactMetadata, 0, len(kinds))
	for _, kind := range kinds {
		env, err := s.readEnvelope(kind, s.versions[kind])
		if err != nil {
			continue
		}
		out = append(out, env.Metadata)
	}
	return out, nil
}

// Delete removes one artifact version.
func (s *Store) Delete(ctx context.Context, kind string, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.artifactPath(kind, version)); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}

	if s.versions[kind] != version {
		return nil
	}

	versions, err := s.versionsOnDisk()
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	if vs := versions[kind]; len(vs) > 0 {
		s.versions[kind] = vs[0]
	} else {
		delete(s.versions, kind)
	}
	return nil
}

// Prune keeps the newest keep versions of kind and removes the rest. It
// returns the removed versions, newest first. Files that cannot be removed
// are skipped.
func (s *Store) Prune(ctx context.Context, kind string, keep int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		keep = 1
	}

	versions, err := s.versionsOnDisk()
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	vs := versions[kind]
	removed := make([]int, 0, max(len(vs)-keep, 0))
	for i := keep; i < len(vs); i++ {
		if err := os.Remove(s.artifactPath(kind, vs[i])); err != nil {
			continue
		}
		removed = append(removed, vs[i])
	}
	return removed, nil
}

func (s *Store) artifactPath(kind string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", kind, version, artifactSuffix))
}
