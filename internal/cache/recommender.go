// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/tomtom215/timelytourist/internal/metrics"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
)

// Engine is the recommendation surface being cached. *recommend.Engine
// implements it.
type Engine interface {
	Recommend(ctx context.Context, prefs features.Preferences, k int) []recommend.Recommendation
	SimilarLocations(ctx context.Context, name string, k int) []string
	Manifest() recommend.Manifest
}

// Recommender memoizes Recommend results. Artifacts are fixed for the
// process lifetime, so a result stays valid until evicted. Empty results
// are not cached; they may come from a recovered fault.
//
// SimilarLocations and Manifest pass straight through.
type Recommender struct {
	engine Engine
	lru    *LRU[[]recommend.Recommendation]
}

// NewRecommender wraps engine with a cache of capacity result sets.
func NewRecommender(engine Engine, capacity int) *Recommender {
	lru := NewLRU[[]recommend.Recommendation](capacity)
	lru.OnEvict(func(string) {
		metrics.CacheEvictions.Inc()
	})
	return &Recommender{engine: engine, lru: lru}
}

// Recommend returns the cached result for prefs and k, computing it on a
// miss. Callers get their own slice.
//
//nolint:gocritic // prefs passed by value to match the engine signature
func (r *Recommender) Recommend(ctx context.Context, prefs features.Preferences, k int) []recommend.Recommendation {
	key := cacheKey(prefs, k)
	if recs, ok := r.lru.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return clone(recs)
	}
	metrics.RecordCacheLookup(false)

	recs := r.engine.Recommend(ctx, prefs, k)
	if len(recs) > 0 {
		r.lru.Add(key, clone(recs))
		metrics.CacheEntries.Set(float64(r.lru.Len()))
	}
	return recs
}

// SimilarLocations delegates to the engine.
func (r *Recommender) SimilarLocations(ctx context.Context, name string, k int) []string {
	return r.engine.SimilarLocations(ctx, name, k)
}

// Manifest delegates to the engine.
func (r *Recommender) Manifest() recommend.Manifest {
	return r.engine.Manifest()
}

// Stats returns the cache statistics.
func (r *Recommender) Stats() Stats {
	return r.lru.Stats()
}

// cacheKey uses raw values because recommendations echo them back.
// Absent and empty optional values must not collide.
//
//nolint:gocritic // prefs passed by value for immutability
func cacheKey(prefs features.Preferences, k int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(k))
	for _, v := range []*string{&prefs.PersonalityTraits, &prefs.TourismCategory, prefs.TravelMotivation, prefs.TravellingConcerns} {
		b.WriteByte(0)
		if v == nil {
			b.WriteByte('-')
			continue
		}
		b.WriteByte('+')
		b.WriteString(strconv.Quote(*v))
	}
	return b.String()
}

// clone copies recs including the optional echo fields, so cached entries
// share no memory with callers.
func clone(recs []recommend.Recommendation) []recommend.Recommendation {
	out := make([]recommend.Recommendation, len(recs))
	copy(out, recs)
	for i := range out {
		out[i].Motivation = cloneString(out[i].Motivation)
		out[i].Concerns = cloneString(out[i].Concerns)
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
