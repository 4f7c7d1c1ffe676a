// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package scoring

import (
	"strings"

	"github.com/tomtom215/conexus/internal/models"
)

// Factor score constants. Each factor maps its rule onto [0,1]; the floors
// keep near-misses competitive instead of zeroing them out of the ranking.
const (
	// experienceFloor is the minimum experience score once any
	// experience exists against a requirement.
	experienceFloor = 0.1

	// educationFloor is the minimum education score for a candidate
	// below the required rank.
	educationFloor = 0.2

	// Location tiers.
	locationExact    = 1.0
	locationContains = 0.8
	locationRegion   = 0.6
	locationNeutral  = 0.5
	locationDistant  = 0.3

	// Salary tiers.
	salaryInRange     = 1.0
	salaryBelowNear   = 0.9
	salaryBelowFar    = 0.7
	salaryAboveNear   = 0.6
	salaryAboveFar    = 0.2
	salaryBelowLeeway = 0.20
	salaryAboveLeeway = 0.15
)

// skillsFactor scores required-skill coverage and returns the matched and
// missing requirement names for reason generation. A job without required
// skills scores 1.0 for everyone.
func skillsFactor(candidate *models.CandidateProfile, job *models.JobProfile) (score float64, matched, missing []string) {
	required := job.Requirements.Skills
	if len(required) == 0 {
		return 1.0, nil, nil
	}

	candidateSkills := make([]string, 0, len(candidate.Skills))
	for _, s := range candidate.Skills {
		if normalized := normalizeSkill(s.Name); normalized != "" {
			candidateSkills = append(candidateSkills, normalized)
		}
	}

	for _, req := range required {
		normalizedReq := normalizeSkill(req)
		if normalizedReq == "" {
			continue
		}

		found := false
		for _, cs := range candidateSkills {
			if skillsMatch(cs, normalizedReq) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}

	total := len(matched) + len(missing)
	if total == 0 {
		// Every requirement was blank.
		return 1.0, nil, nil
	}
	return float64(len(matched)) / float64(total), matched, missing
}

// experienceFactor scores total experience years against the requirement.
// Meeting the requirement scores 1.0; shortfalls scale proportionally with
// a floor so near-misses stay in contention.
func experienceFactor(years, required float64) float64 {
	if required <= 0 {
		return 1.0
	}

	ratio := years / required
	if ratio >= 1 {
		return 1.0
	}
	if ratio < experienceFloor {
		return experienceFloor
	}
	return ratio
}

// educationFactor scores the candidate's highest rank against the required
// rank on the ordinal ladder.
func educationFactor(candidateRank, requiredRank int) float64 {
	if requiredRank <= 0 {
		return 1.0
	}
	if candidateRank >= requiredRank {
		return 1.0
	}

	ratio := float64(candidateRank) / float64(requiredRank)
	if ratio < educationFloor {
		return educationFloor
	}
	return ratio
}

// locationFactor scores location compatibility in tiers. A distant
// location is scored as possible relocation, not a hard fail.
func locationFactor(candidateLocation, jobLocation string, remote bool) float64 {
	if remote {
		return locationExact
	}

	cand := strings.ToLower(strings.TrimSpace(candidateLocation))
	job := strings.ToLower(strings.TrimSpace(jobLocation))

	if cand == "" || job == "" {
		return locationNeutral
	}
	if cand == job {
		return locationExact
	}
	if strings.Contains(cand, job) || strings.Contains(job, cand) {
		return locationContains
	}
	if localityToken(cand) == localityToken(job) {
		return locationRegion
	}
	return locationDistant
}

// salaryFactor scores the candidate's expectation against the offered
// range. Absent data on either side means no constraint and scores 1.0.
func salaryFactor(expectation *float64, salaryRange *models.SalaryRange) float64 {
	if expectation == nil || salaryRange == nil || salaryRange.Min <= 0 {
		return salaryInRange
	}

	expected := *expectation
	min := salaryRange.Min
	max := salaryRange.EffectiveMax()

	if expected >= min && expected <= max {
		return salaryInRange
	}

	if expected < min {
		// Below the band: hireable at a discount, better within tolerance.
		if min-expected <= min*salaryBelowLeeway {
			return salaryBelowNear
		}
		return salaryBelowFar
	}

	// Above the band.
	if expected-max <= max*salaryAboveLeeway {
		return salaryAboveNear
	}
	return salaryAboveFar
}
