// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package scoring

import (
	"fmt"
	"strings"

	"github.com/tomtom215/conexus/internal/models"
)

// Reason thresholds. Factors between the adequate band and the gap band
// generate no reason at all; middling scores are not worth narrating.
const (
	reasonStrongThreshold   = 0.8
	reasonAdequateThreshold = 0.6
	reasonGapThreshold      = 0.4
)

// reasonContext carries the factor inputs needed to phrase reasons.
type reasonContext struct {
	matchedSkills []string
	missingSkills []string
	years         float64
	requiredYears float64
	remote        bool
}

// buildReasons converts a breakdown into human-readable explanations,
// one per factor that lands in a narratable band.
func buildReasons(b models.ScoreBreakdown, rc reasonContext) []string {
	reasons := make([]string, 0, 5)

	if r := skillsReason(b.Skills, rc); r != "" {
		reasons = append(reasons, r)
	}
	if r := experienceReason(b.Experience, rc); r != "" {
		reasons = append(reasons, r)
	}
	if r := educationReason(b.Education); r != "" {
		reasons = append(reasons, r)
	}
	if r := locationReason(b.Location, rc.remote); r != "" {
		reasons = append(reasons, r)
	}
	if r := salaryReason(b.Salary); r != "" {
		reasons = append(reasons, r)
	}

	return reasons
}

func skillsReason(score float64, rc reasonContext) string {
	total := len(rc.matchedSkills) + len(rc.missingSkills)

	switch {
	case score >= reasonStrongThreshold:
		if total == 0 {
			return "No specific skills required"
		}
		return fmt.Sprintf("Excellent skills match: %d/%d required skills", len(rc.matchedSkills), total)
	case score >= reasonAdequateThreshold:
		return fmt.Sprintf("Good skills match: %d/%d required skills", len(rc.matchedSkills), total)
	case score < reasonGapThreshold:
		if len(rc.missingSkills) > 0 {
			return fmt.Sprintf("Skills gap: missing %s", strings.Join(rc.missingSkills, ", "))
		}
		return "Skills gap: few required skills matched"
	}
	return ""
}

func experienceReason(score float64, rc reasonContext) string {
	switch {
	case score >= reasonStrongThreshold:
		if rc.requiredYears <= 0 {
			return "No minimum experience required"
		}
		return fmt.Sprintf("Strong experience: %.1f years against %.1f required", rc.years, rc.requiredYears)
	case score >= reasonAdequateThreshold:
		return fmt.Sprintf("Adequate experience: %.1f years against %.1f required", rc.years, rc.requiredYears)
	case score < reasonGapThreshold:
		return fmt.Sprintf("Limited experience: %.1f years against %.1f required", rc.years, rc.requiredYears)
	}
	return ""
}

func educationReason(score float64) string {
	switch {
	case score >= reasonStrongThreshold:
		return "Education meets the requirement"
	case score >= reasonAdequateThreshold:
		return "Education close to the requirement"
	case score < reasonGapThreshold:
		return "Education below the requirement"
	}
	return ""
}

func locationReason(score float64, remote bool) string {
	switch {
	case score >= reasonStrongThreshold:
		if remote {
			return "Remote role: location unrestricted"
		}
		return "Location is an excellent fit"
	case score >= reasonAdequateThreshold:
		return "Location is compatible"
	case score < reasonGapThreshold:
		return "Location mismatch: relocation likely required"
	}
	return ""
}

func salaryReason(score float64) string {
	switch {
	case score >= reasonStrongThreshold:
		return "Salary expectation fits the offered range"
	case score >= reasonAdequateThreshold:
		return "Salary expectation slightly outside the offered range"
	case score < reasonGapThreshold:
		return "Salary expectation well outside the offered range"
	}
	return ""
}
