// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/conexus/internal/metrics"
	"github.com/tomtom215/conexus/internal/models"
)

// pairing is one candidate-job combination expanded from a batch request.
type pairing struct {
	candidateID string
	jobID       string
}

// BatchMatch expands the request into candidate-job pairings and scores
// them sequentially through the same path as ScoreCandidate: fetch both
// profiles, score, persist, emit match.created.
//
// A pairing failure is logged and counted in Failed, never surfaced as
// a call-level error, so Successful+Failed always equals Processed.
// Successful results below the effective minimum score count as
// successful but are excluded from Results. Cache invalidation happens
// once for the whole batch instead of per pairing.
//
// Sequential processing is deliberate: batches run against the
// rate-limited directory and the single-writer store, where a fan-out
// buys nothing and loses the bounded load profile.
func (s *Service) BatchMatch(ctx context.Context, req models.BatchMatchRequest) (*models.BatchMatchResult, error) {
	cfg := s.Config()

	pairings, err := expandPairings(req, cfg.MaxBatchPairings)
	if err != nil {
		return nil, err
	}

	minScore := cfg.MinScore
	if req.MinScore != nil {
		if *req.MinScore < 0 || *req.MinScore > 100 {
			return nil, models.NewValidationError("min_score", "must be between 0 and 100")
		}
		minScore = *req.MinScore
	}

	start := time.Now()
	out := &models.BatchMatchResult{
		Processed: len(pairings),
		Results:   make([]models.MatchResult, 0, len(pairings)),
	}
	touched := make(map[string]struct{})

	for _, p := range pairings {
		result, err := s.scoreAndPersist(ctx, p, cfg)
		if err != nil {
			out.Failed++
			s.logger.Warn().
				Err(err).
				Str("candidate_id", p.candidateID).
				Str("job_id", p.jobID).
				Msg("Batch pairing failed")
			continue
		}

		out.Successful++
		touched[p.candidateID] = struct{}{}
		touched[p.jobID] = struct{}{}

		if result.Score >= minScore {
			out.Results = append(out.Results, *result)
		}
	}

	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	s.invalidateEntities(ids...)

	out.Duration = time.Since(start)
	metrics.RecordBatchOutcome(out.Successful, out.Failed, out.Duration)

	s.logger.Info().
		Str("type", string(req.Type)).
		Int("processed", out.Processed).
		Int("successful", out.Successful).
		Int("failed", out.Failed).
		Dur("duration", out.Duration).
		Msg("Batch match completed")

	return out, nil
}

// scoreAndPersist runs one pairing end to end. Any step failing makes
// the whole pairing count as failed.
func (s *Service) scoreAndPersist(ctx context.Context, p pairing, cfg Config) (*models.MatchResult, error) {
	candidate, err := s.directory.GetCandidateProfile(ctx, p.candidateID)
	if err != nil {
		return nil, err
	}
	job, err := s.directory.GetJobProfile(ctx, p.jobID)
	if err != nil {
		return nil, err
	}

	result, err := s.scorePair(candidate, job, cfg.Weights)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveMatchResult(ctx, result); err != nil {
		return nil, err
	}

	s.publishMatchCreated(ctx, result)
	return result, nil
}

// expandPairings turns a batch request into the concrete pairing list
// and enforces the batch size cap before any work happens.
func expandPairings(req models.BatchMatchRequest, maxPairings int) ([]pairing, error) {
	if !models.IsValidBatchMatchType(req.Type) {
		return nil, models.NewValidationError("type",
			fmt.Sprintf("must be one of %v", models.ValidBatchMatchTypes))
	}
	if len(req.CandidateIDs) == 0 {
		return nil, models.NewValidationError("candidate_ids", "is required")
	}
	if len(req.JobIDs) == 0 {
		return nil, models.NewValidationError("job_ids", "is required")
	}

	var pairings []pairing
	switch req.Type {
	case models.BatchCandidateToJobs:
		pairings = make([]pairing, 0, len(req.JobIDs))
		for _, jobID := range req.JobIDs {
			pairings = append(pairings, pairing{candidateID: req.CandidateIDs[0], jobID: jobID})
		}
	case models.BatchJobToCandidates:
		pairings = make([]pairing, 0, len(req.CandidateIDs))
		for _, candidateID := range req.CandidateIDs {
			pairings = append(pairings, pairing{candidateID: candidateID, jobID: req.JobIDs[0]})
		}
	case models.BatchCrossMatch:
		pairings = make([]pairing, 0, len(req.CandidateIDs)*len(req.JobIDs))
		for _, candidateID := range req.CandidateIDs {
			for _, jobID := range req.JobIDs {
				pairings = append(pairings, pairing{candidateID: candidateID, jobID: jobID})
			}
		}
	}

	if len(pairings) > maxPairings {
		return nil, models.NewValidationError("pairings",
			fmt.Sprintf("%d pairings exceed the batch cap of %d", len(pairings), maxPairings))
	}

	return pairings, nil
}
