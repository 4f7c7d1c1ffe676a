// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/conexus/internal/cache"
	"github.com/tomtom215/conexus/internal/directory"
	"github.com/tomtom215/conexus/internal/events"
	"github.com/tomtom215/conexus/internal/metrics"
	"github.com/tomtom215/conexus/internal/models"
)

// personalizationBoost scales the profile-affinity adjustment: an item
// in a category holding the user's entire positive history gets a 25%
// score boost, proportionally less for smaller shares.
const personalizationBoost = 0.25

// Engine serves recommendation lists by blending registered strategies
// and post-processing the combined ranking. Configuration is fixed at
// construction; model state lives in the strategies and is rebuilt by
// RefreshAll.
type Engine struct {
	cfg       Config
	directory directory.Service
	cache     cache.Cacher
	publisher events.Publisher
	logger    zerolog.Logger

	log     *InteractionLog
	catalog *Catalog

	mu         sync.RWMutex
	strategies []Strategy
}

// NewEngine creates a recommendation engine. The publisher may be nil
// to disable event emission. The cache should be constructed with the
// configured CacheTTL; entries are stored under the backend's default
// TTL.
func NewEngine(cfg Config, dir directory.Service, cacher cache.Cacher,
	publisher events.Publisher, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, models.NewValidationError("config", err.Error())
	}
	if dir == nil {
		return nil, models.NewValidationError("directory", "directory service is required")
	}
	if cacher == nil {
		return nil, models.NewValidationError("cache", "cache is required")
	}

	return &Engine{
		cfg:       cfg,
		directory: dir,
		cache:     cacher,
		publisher: publisher,
		logger:    logger.With().Str("component", "recommend").Logger(),
		log:       NewInteractionLog(0),
		catalog:   NewCatalog(),
	}, nil
}

// InteractionLog exposes the engine's interaction log for strategy
// construction.
func (e *Engine) InteractionLog() *InteractionLog {
	return e.log
}

// Catalog exposes the engine's item category catalog for strategy
// construction.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// RegisterStrategy adds a strategy to the engine. Strategies excluded
// by the configured allow-list are ignored with a log line.
func (e *Engine) RegisterStrategy(s Strategy) {
	if !e.cfg.allows(s.Name()) {
		e.logger.Info().
			Str("strategy", string(s.Name())).
			Msg("Strategy disabled by configuration, not registering")
		return
	}

	e.mu.Lock()
	e.strategies = append(e.strategies, s)
	e.mu.Unlock()

	e.logger.Debug().
		Str("strategy", string(s.Name())).
		Float64("weight", s.Weight()).
		Msg("Strategy registered")
}

// RegisterDefaultStrategies wires the three built-in strategies over
// the engine's interaction log and catalog, with weights normalized
// from the configuration. The matcher backs the similarity strategy.
func (e *Engine) RegisterDefaultStrategies(matcher Matcher) {
	weights := e.cfg.Weights.Normalize()
	e.RegisterStrategy(NewCollaborative(e.log, e.catalog, weights.Collaborative))
	e.RegisterStrategy(NewSimilarity(matcher, e.catalog, weights.Similarity))
	e.RegisterStrategy(NewTrending(e.log, e.catalog, weights.Trending))
}

// registeredStrategies returns a snapshot of the strategy list.
func (e *Engine) registeredStrategies() []Strategy {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Strategy, len(e.strategies))
	copy(out, e.strategies)
	return out
}

// GetRecommendations returns a ranked, post-processed recommendation
// list for the anchor. Results are served from cache when an identical
// request was answered within the TTL.
func (e *Engine) GetRecommendations(ctx context.Context, anchorID string,
	itemType models.ItemType, req models.RecommendationRequest) (*models.RecommendationResult, error) {
	start := time.Now()

	req, err := e.normalizeRequest(anchorID, itemType, req)
	if err != nil {
		return nil, err
	}

	key := recommendationKey(anchorID, itemType, req)
	if value, ok := e.cache.Get(key); ok {
		if result, ok := cache.Decode[models.RecommendationResult](value); ok {
			metrics.RecordCacheGet(true)
			result.Cached = true
			e.publishGenerated(ctx, result, true, time.Since(start))
			return result, nil
		}
	}
	metrics.RecordCacheGet(false)

	recs, algorithms, err := e.generate(ctx, anchorID, itemType, req)
	if err != nil {
		return nil, err
	}
	recs = e.postProcess(anchorID, recs, req)

	result := &models.RecommendationResult{
		AnchorID:        anchorID,
		ItemType:        itemType,
		Strategy:        req.Strategy,
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
		Cached:          false,
	}

	e.cache.Set(key, result, anchorID)
	metrics.RecordCacheSet()

	duration := time.Since(start)
	metrics.RecordRecommendation(string(req.Strategy), len(recs), duration)
	e.publishGenerated(ctx, result, false, duration)

	e.logger.Debug().
		Str("anchor_id", anchorID).
		Str("item_type", string(itemType)).
		Str("strategy", string(req.Strategy)).
		Strs("algorithms", algorithms).
		Int("count", len(recs)).
		Dur("duration", duration).
		Msg("Recommendations generated")

	return result, nil
}

// normalizeRequest validates the request and fills defaults. The
// normalized request also feeds the cache key, so equivalent requests
// share an entry.
func (e *Engine) normalizeRequest(anchorID string, itemType models.ItemType,
	req models.RecommendationRequest) (models.RecommendationRequest, error) {
	if anchorID == "" {
		return req, models.NewValidationError("anchor_id", "anchor ID is required")
	}
	if !models.IsValidItemType(itemType) {
		return req, models.NewValidationError("item_type",
			fmt.Sprintf("unknown item type %q", itemType))
	}
	switch {
	case req.Count < 0:
		return req, models.NewValidationError("count", "count must be non-negative")
	case req.Count == 0:
		req.Count = e.cfg.DefaultCount
	case req.Count > e.cfg.MaxCount:
		return req, models.NewValidationError("count",
			fmt.Sprintf("count must be at most %d", e.cfg.MaxCount))
	}
	if req.Strategy == "" {
		req.Strategy = models.AlgorithmHybrid
	} else if !models.IsValidRecommendationAlgorithm(req.Strategy) {
		return req, models.NewValidationError("strategy",
			fmt.Sprintf("unknown strategy %q", req.Strategy))
	}
	if req.MinScore != nil && (*req.MinScore < 0 || *req.MinScore > 1) {
		return req, models.NewValidationError("min_score", "min_score must be in [0,1]")
	}
	if req.MinConfidence != nil && (*req.MinConfidence < 0 || *req.MinConfidence > 1) {
		return req, models.NewValidationError("min_confidence", "min_confidence must be in [0,1]")
	}
	for _, name := range req.AllowAlgorithms {
		if !models.IsValidRecommendationAlgorithm(name) || name == models.AlgorithmHybrid {
			return req, models.NewValidationError("allow_algorithms",
				fmt.Sprintf("unknown strategy %q", name))
		}
	}
	return req, nil
}

// generate produces the raw ranked list plus the names of the
// strategies that contributed.
func (e *Engine) generate(ctx context.Context, anchorID string, itemType models.ItemType,
	req models.RecommendationRequest) ([]models.Recommendation, []string, error) {
	strategies := e.selectStrategies(req)
	if len(strategies) == 0 {
		return nil, nil, models.NewComputationError("strategy selection",
			errors.New("no recommendation strategies enabled for this request"))
	}

	if req.Strategy != models.AlgorithmHybrid {
		recs, err := strategies[0].Generate(ctx, anchorID, itemType, req.Count, req.Filters)
		if err != nil {
			return nil, nil, fmt.Errorf("strategy %s: %w", req.Strategy, err)
		}
		return recs, []string{string(req.Strategy)}, nil
	}

	return e.generateHybrid(ctx, anchorID, itemType, req, strategies)
}

// selectStrategies intersects the registered strategies with the
// request's strategy selection and allow-list. Zero-weight strategies
// are excluded from hybrid fan-outs.
func (e *Engine) selectStrategies(req models.RecommendationRequest) []Strategy {
	registered := e.registeredStrategies()

	allowed := func(name models.RecommendationAlgorithm) bool {
		if len(req.AllowAlgorithms) == 0 {
			return true
		}
		for _, a := range req.AllowAlgorithms {
			if a == name {
				return true
			}
		}
		return false
	}

	var selected []Strategy
	for _, s := range registered {
		if !allowed(s.Name()) {
			continue
		}
		if req.Strategy != models.AlgorithmHybrid {
			if s.Name() == req.Strategy {
				return []Strategy{s}
			}
			continue
		}
		if s.Weight() <= 0 {
			continue
		}
		selected = append(selected, s)
	}
	if req.Strategy != models.AlgorithmHybrid {
		return nil
	}
	return selected
}

// strategyResult is one strategy's contribution to a hybrid fan-out.
type strategyResult struct {
	name   models.RecommendationAlgorithm
	weight float64
	recs   []models.Recommendation
	err    error
}

// generateHybrid fans out to every selected strategy concurrently and
// combines the contributions. At least one strategy must succeed.
func (e *Engine) generateHybrid(ctx context.Context, anchorID string, itemType models.ItemType,
	req models.RecommendationRequest, strategies []Strategy) ([]models.Recommendation, []string, error) {
	results := runStrategies(ctx, anchorID, itemType, req.Count, req.Filters, strategies)

	succeeded := results[:0]
	for _, res := range results {
		if res.err != nil {
			e.logger.Warn().
				Err(res.err).
				Str("strategy", string(res.name)).
				Str("anchor_id", anchorID).
				Msg("Recommendation strategy failed, skipping its contribution")
			continue
		}
		succeeded = append(succeeded, res)
	}
	if len(succeeded) == 0 {
		return nil, nil, models.NewComputationError("hybrid generation",
			errors.New("all recommendation strategies failed"))
	}

	recs := combineContributions(succeeded, itemType)
	names := make([]string, 0, len(succeeded))
	for _, res := range succeeded {
		names = append(names, string(res.name))
	}
	return recs, names, nil
}

// runStrategies executes the fan-out. Each strategy is asked for
// 2*ceil(count*weight) items so the combine pass has enough overlap to
// blend, and writes its result into its own slot.
func runStrategies(ctx context.Context, anchorID string, itemType models.ItemType,
	count int, filters map[string]string, strategies []Strategy) []strategyResult {
	results := make([]strategyResult, len(strategies))

	var wg sync.WaitGroup
	for i, s := range strategies {
		wg.Add(1)
		go func(i int, s Strategy) {
			defer wg.Done()
			ask := 2 * int(math.Ceil(float64(count)*s.Weight()))
			recs, err := s.Generate(ctx, anchorID, itemType, ask, filters)
			results[i] = strategyResult{name: s.Name(), weight: s.Weight(), recs: recs, err: err}
		}(i, s)
	}
	wg.Wait()

	return results
}

// hybridContribution accumulates one item's weighted inputs.
type hybridContribution struct {
	weightSum  float64
	score      float64
	confidence float64
	names      []string
	category   string
}

// combineContributions blends per-item scores as a weighted average
// over the strategies that surfaced the item, renormalized over those
// contributors. Confidence additionally scales with how many of the
// succeeded strategies agreed on the item.
func combineContributions(succeeded []strategyResult, itemType models.ItemType) []models.Recommendation {
	contributions := make(map[string]*hybridContribution)
	for _, res := range succeeded {
		for i := range res.recs {
			rec := &res.recs[i]
			c, ok := contributions[rec.ItemID]
			if !ok {
				c = &hybridContribution{}
				contributions[rec.ItemID] = c
			}
			c.weightSum += res.weight
			c.score += res.weight * rec.Score
			c.confidence += res.weight * rec.Confidence
			c.names = append(c.names, string(res.name))
			if c.category == "" {
				c.category = rec.Category
			}
		}
	}

	total := len(succeeded)
	recs := make([]models.Recommendation, 0, len(contributions))
	for itemID, c := range contributions {
		if c.weightSum == 0 {
			continue
		}
		agreement := float64(len(c.names)) / float64(total)
		recs = append(recs, models.Recommendation{
			ItemID:      itemID,
			ItemType:    itemType,
			Score:       c.score / c.weightSum,
			Confidence:  (c.confidence / c.weightSum) * agreement,
			Algorithm:   models.AlgorithmHybrid,
			Explanation: "Blended from " + strings.Join(c.names, ", "),
			Category:    c.category,
		})
	}
	sortRecommendations(recs)
	return recs
}

// postProcess runs the filter, diversity, personalization, and
// truncation passes over the raw ranked list.
func (e *Engine) postProcess(anchorID string, recs []models.Recommendation,
	req models.RecommendationRequest) []models.Recommendation {
	recs = e.applyFilters(recs, req)
	if e.cfg.EnableDiversity {
		recs = applyDiversity(recs, req.Count, e.cfg.DiversityThreshold)
	}
	if e.cfg.EnablePersonalization {
		e.applyPersonalization(anchorID, recs)
	}
	if len(recs) > req.Count {
		recs = recs[:req.Count]
	}
	return recs
}

// applyFilters drops items below the score and confidence floors, and
// items produced by an algorithm outside the request's allow-list.
// Hybrid blends always pass the algorithm check; their strategy mix
// was restricted before the fan-out.
func (e *Engine) applyFilters(recs []models.Recommendation,
	req models.RecommendationRequest) []models.Recommendation {
	minScore := e.cfg.MinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	minConfidence := e.cfg.MinConfidence
	if req.MinConfidence != nil {
		minConfidence = *req.MinConfidence
	}
	allowed := func(name models.RecommendationAlgorithm) bool {
		if len(req.AllowAlgorithms) == 0 || name == models.AlgorithmHybrid {
			return true
		}
		for _, a := range req.AllowAlgorithms {
			if a == name {
				return true
			}
		}
		return false
	}

	kept := recs[:0]
	for _, rec := range recs {
		if rec.Score < minScore || rec.Confidence < minConfidence {
			continue
		}
		if !allowed(rec.Algorithm) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// applyDiversity walks the sorted list capping each category at
// ceil(count*threshold) accepted items. When too few categories exist
// to fill the list, a second pass refills from the rejects in rank
// order.
func applyDiversity(recs []models.Recommendation, count int, threshold float64) []models.Recommendation {
	if len(recs) <= 1 {
		return recs
	}
	categoryCap := int(math.Ceil(float64(count) * threshold))
	if categoryCap < 1 {
		categoryCap = 1
	}

	accepted := make([]models.Recommendation, 0, count)
	var rejected []models.Recommendation
	perCategory := make(map[string]int)
	for _, rec := range recs {
		if len(accepted) >= count {
			break
		}
		if perCategory[rec.Category] < categoryCap {
			accepted = append(accepted, rec)
			perCategory[rec.Category]++
			continue
		}
		rejected = append(rejected, rec)
	}
	for _, rec := range rejected {
		if len(accepted) >= count {
			break
		}
		accepted = append(accepted, rec)
	}
	return accepted
}

// applyPersonalization boosts items in categories the anchor has
// engaged with, proportional to that category's share of their
// positive history, and re-sorts. Scores stay clamped to [0,1].
func (e *Engine) applyPersonalization(anchorID string, recs []models.Recommendation) {
	shares := e.categoryShares(anchorID)
	if len(shares) == 0 {
		return
	}
	for i := range recs {
		if recs[i].Category == "" {
			continue
		}
		share := shares[recs[i].Category]
		if share == 0 {
			continue
		}
		score := recs[i].Score * (1 + personalizationBoost*share)
		if score > 1 {
			score = 1
		}
		recs[i].Score = score
	}
	sortRecommendations(recs)
}

// categoryShares returns the fraction of the user's positive
// interaction weight falling in each known category.
func (e *Engine) categoryShares(userID string) map[string]float64 {
	var total float64
	weights := make(map[string]float64)
	for _, entry := range e.log.ByUser(userID) {
		w := interactionWeight(&entry)
		if w <= 0 {
			continue
		}
		total += w
		category := e.catalog.Category(entry.ItemType, entry.ItemID)
		if category == "" {
			continue
		}
		weights[category] += w
	}
	if total == 0 {
		return nil
	}
	for category := range weights {
		weights[category] /= total
	}
	return weights
}

// RecordInteraction validates and appends one interaction to the log,
// invalidates the user's cached lists, and publishes the tracking
// event. Model state is untouched until the next refresh.
func (e *Engine) RecordInteraction(ctx context.Context, i models.Interaction) error {
	if i.UserID == "" {
		return models.NewValidationError("user_id", "user ID is required")
	}
	if i.ItemID == "" {
		return models.NewValidationError("item_id", "item ID is required")
	}
	if !models.IsValidItemType(i.ItemType) {
		return models.NewValidationError("item_type",
			fmt.Sprintf("unknown item type %q", i.ItemType))
	}
	if !models.IsValidInteractionType(i.Type) {
		return models.NewValidationError("type",
			fmt.Sprintf("unknown interaction type %q", i.Type))
	}
	if i.Rating != nil && (*i.Rating < 1 || *i.Rating > 5) {
		return models.NewValidationError("rating", "rating must be in [1,5]")
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now().UTC()
	}

	e.log.Append(i)

	removed := e.cache.InvalidateByPrefix(userRecommendationPrefix(i.UserID))
	if removed > 0 {
		metrics.RecordCacheInvalidation(removed)
	}
	metrics.RecordInteraction(string(i.Type))

	if e.publisher != nil {
		events.PublishAsync(ctx, e.publisher, events.NewInteractionTracked(&i))
	}

	e.logger.Debug().
		Str("user_id", i.UserID).
		Str("item_id", i.ItemID).
		Str("item_type", string(i.ItemType)).
		Str("type", string(i.Type)).
		Int("cache_invalidated", removed).
		Msg("Interaction recorded")

	return nil
}

// RefreshAll rebuilds the item catalog and every strategy's model
// state. Individual failures are collected but never stop the
// remaining refreshes; callers log the joined error at warn.
func (e *Engine) RefreshAll(ctx context.Context) error {
	start := time.Now()
	strategies := e.registeredStrategies()
	var errs []error

	if err := e.catalog.refresh(ctx, e.directory); err != nil {
		errs = append(errs, err)
	}

	for _, s := range strategies {
		if err := s.Refresh(ctx); err != nil {
			errs = append(errs, fmt.Errorf("refreshing %s: %w", s.Name(), err))
		}
	}

	e.logger.Info().
		Int("strategies", len(strategies)).
		Int("interactions", e.log.Len()).
		Int("failures", len(errs)).
		Dur("duration", time.Since(start)).
		Msg("Recommendation models refreshed")

	return errors.Join(errs...)
}

// RefreshInterval returns the configured refresh cadence for the
// supervising service.
func (e *Engine) RefreshInterval() time.Duration {
	return e.cfg.RefreshInterval
}

// publishGenerated emits the recommendation.generated event
// best-effort.
func (e *Engine) publishGenerated(ctx context.Context, result *models.RecommendationResult,
	cacheHit bool, duration time.Duration) {
	if e.publisher == nil {
		return
	}
	algorithms := []string{string(result.Strategy)}
	events.PublishAsync(ctx, e.publisher, events.NewRecommendationGenerated(
		result.AnchorID, result.ItemType, len(result.Recommendations),
		algorithms, cacheHit, duration))
}

// recommendationKey builds the cache key for one normalized request.
// The user-scoped prefix is what interaction tracking invalidates by.
func recommendationKey(anchorID string, itemType models.ItemType,
	req models.RecommendationRequest) string {
	return cache.Key(fmt.Sprintf("recommendations:%s:%s", anchorID, itemType), req)
}

// userRecommendationPrefix covers every cached list for one user.
func userRecommendationPrefix(userID string) string {
	return "recommendations:" + userID + ":"
}
