// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package scoring implements the pure candidate-job compatibility score.
//
// The engine is deterministic and performs no I/O: identical inputs
// (candidate, job, weights) always produce identical results, which is
// what makes redundant recomputation on concurrent cache misses safe
// upstream. Five weighted factors (skills, experience, education,
// location, salary) each map onto [0,1] and combine into an overall
// score plus a confidence value that rewards internally-consistent
// profiles over erratic ones.
package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/conexus/internal/models"
)

// Version identifies the scoring algorithm revision recorded on every
// MatchResult. Bump on any change to factor rules or weights semantics.
const Version = "1.0.0"

// ScoreResult is the output of one scoring call.
type ScoreResult struct {
	// Breakdown holds the per-factor scores and the weighted Overall,
	// all in [0,1].
	Breakdown models.ScoreBreakdown `json:"breakdown"`

	// Confidence is 0.4*(1-variance) + 0.6*mean over the five factor
	// scores, in [0,1]. Consistent factor profiles score higher than
	// erratic ones with the same mean.
	Confidence float64 `json:"confidence"`

	// Reasons explain factors that are notably strong or weak.
	Reasons []string `json:"reasons"`

	// AlgorithmVersion is the scoring revision that produced this result.
	AlgorithmVersion string `json:"algorithm_version"`
}

// RankedCandidate pairs a candidate ID with its score against one job.
type RankedCandidate struct {
	CandidateID string      `json:"candidate_id"`
	Result      ScoreResult `json:"result"`
}

// Engine computes compatibility scores. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	weights FactorWeights

	// now supplies the reference time for open-ended experience spans.
	// Injected for deterministic tests.
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the reference-time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine with the default weights.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineWithWeights creates an Engine with a custom weight vector.
func NewEngineWithWeights(weights FactorWeights, opts ...Option) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, models.NewValidationError("weights", err.Error())
	}

	e := NewEngine(opts...)
	e.weights = weights
	return e, nil
}

// Weights returns the engine's current weight vector.
func (e *Engine) Weights() FactorWeights {
	return e.weights
}

// Score computes the compatibility of a candidate and a job using the
// engine's weights.
func (e *Engine) Score(candidate *models.CandidateProfile, job *models.JobProfile) (*ScoreResult, error) {
	return e.ScoreWithWeights(candidate, job, e.weights)
}

// ScoreWithWeights computes the compatibility of a candidate and a job
// using an explicit weight vector. Malformed profile data surfaces as a
// ComputationError rather than a panic.
func (e *Engine) ScoreWithWeights(candidate *models.CandidateProfile, job *models.JobProfile, weights FactorWeights) (result *ScoreResult, err error) {
	if candidate == nil {
		return nil, models.NewComputationError("scoring", fmt.Errorf("candidate profile is nil"))
	}
	if job == nil {
		return nil, models.NewComputationError("scoring", fmt.Errorf("job profile is nil"))
	}
	if verr := weights.Validate(); verr != nil {
		return nil, models.NewValidationError("weights", verr.Error())
	}

	// Factor arithmetic is total over well-formed profiles, but profile
	// payloads arrive from external services; a panic on pathological
	// data must degrade to a typed error, not kill the request.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = models.NewComputationError("scoring", fmt.Errorf("panic: %v", r))
		}
	}()

	skills, matched, missing := skillsFactor(candidate, job)

	years := candidate.TotalExperienceYears(e.now())
	experience := experienceFactor(years, job.Requirements.ExperienceYears)

	education := educationFactor(
		candidate.HighestEducation().Rank(),
		job.Requirements.Education.Rank(),
	)

	location := locationFactor(candidate.Location, job.Location, job.Remote)
	salary := salaryFactor(candidate.SalaryExpectation, job.SalaryRange)

	breakdown := models.ScoreBreakdown{
		Skills:     skills,
		Experience: experience,
		Education:  education,
		Location:   location,
		Salary:     salary,
	}
	breakdown.Overall = weightedOverall(breakdown, weights)

	reasons := buildReasons(breakdown, reasonContext{
		matchedSkills: matched,
		missingSkills: missing,
		years:         years,
		requiredYears: job.Requirements.ExperienceYears,
		remote:        job.Remote,
	})

	return &ScoreResult{
		Breakdown:        breakdown,
		Confidence:       confidence(breakdown),
		Reasons:          reasons,
		AlgorithmVersion: Version,
	}, nil
}

// RankCandidates scores every candidate against one job, filters by
// minScore (on the [0,1] scale), sorts descending by overall score with
// candidate ID as the stable tiebreak, and truncates to limit.
// Candidates that fail to score are skipped.
func (e *Engine) RankCandidates(candidates []models.CandidateProfile, job *models.JobProfile, minScore float64, limit int) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))

	for i := range candidates {
		result, err := e.Score(&candidates[i], job)
		if err != nil {
			continue
		}
		if result.Breakdown.Overall < minScore {
			continue
		}
		ranked = append(ranked, RankedCandidate{
			CandidateID: candidates[i].ID,
			Result:      *result,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Result.Breakdown.Overall != ranked[j].Result.Breakdown.Overall {
			return ranked[i].Result.Breakdown.Overall > ranked[j].Result.Breakdown.Overall
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// weightedOverall combines factor scores by the weight vector and clamps
// the result into [0,1].
func weightedOverall(b models.ScoreBreakdown, w FactorWeights) float64 {
	overall := b.Skills*w.Skills +
		b.Experience*w.Experience +
		b.Education*w.Education +
		b.Location*w.Location +
		b.Salary*w.Salary
	return clamp01(overall)
}

// confidence rewards internally-consistent factor profiles:
// 0.4*(1-variance) + 0.6*mean over the five factors.
func confidence(b models.ScoreBreakdown) float64 {
	factors := b.Factors()

	var sum float64
	for _, f := range factors {
		sum += f
	}
	mean := sum / float64(len(factors))

	var variance float64
	for _, f := range factors {
		d := f - mean
		variance += d * d
	}
	variance /= float64(len(factors))

	return clamp01(0.4*(1-variance) + 0.6*mean)
}

// clamp01 clips a value into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
