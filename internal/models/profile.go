// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package models defines data structures used throughout the Conexus application.
// These models represent candidate and job profiles, match results, recommendations,
// and API responses.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// CandidateProfile represents a candidate as seen by the matching core.
//
// Profiles are owned by the external profile service and are read-only here:
// the core never mutates a profile, it only scores it. All matching inputs
// come from this struct, so anything the scoring engine needs (skills,
// experience spans, education, location, salary expectation) must be present.
//
// Key Fields:
//   - ID: Unique candidate identifier (assigned by the profile service)
//   - Skills: Declared skills, matched against job requirements by name
//   - Experience: Employment spans; open-ended entries (EndDate nil) count to "now"
//   - Education: Completed degrees; the highest rank is used for scoring
//   - Location: Free-form "City, Region" string as entered by the candidate
//   - SalaryExpectation: Optional; nil means no salary constraint
//
// JSON serialization uses omitempty for optional pointer fields to minimize
// response payload size.
type CandidateProfile struct {
	ID string `json:"id"`

	Skills     []Skill           `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`

	// Location is a free-form location string ("Berlin, Germany").
	Location string `json:"location"`

	// SalaryExpectation is the candidate's expected annual salary.
	// Nil means the candidate expressed no expectation.
	SalaryExpectation *float64 `json:"salary_expectation,omitempty"`

	// Headline and Summary are display-only and never scored.
	Headline string `json:"headline,omitempty"`
	Summary  string `json:"summary,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Skill is a single declared candidate skill.
type Skill struct {
	Name string `json:"name"`

	// Years of hands-on use, when the profile service provides it.
	Years float64 `json:"years,omitempty"`
}

// ExperienceEntry is one employment span on a candidate profile.
// Open-ended entries (current positions) have a nil EndDate and are
// counted up to the scoring timestamp.
type ExperienceEntry struct {
	Title     string     `json:"title,omitempty"`
	Company   string     `json:"company,omitempty"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// EducationEntry is one completed degree on a candidate profile.
type EducationEntry struct {
	Degree      EducationLevel `json:"degree"`
	Institution string         `json:"institution,omitempty"`
	Field       string         `json:"field,omitempty"`
}

// JobProfile represents a job posting as seen by the matching core.
// Owned by the employer service; read-only here.
type JobProfile struct {
	ID string `json:"id"`

	Title        string          `json:"title,omitempty"`
	EmployerID   string          `json:"employer_id,omitempty"`
	Requirements JobRequirements `json:"requirements"`

	// Location is a free-form location string ("Munich, Germany").
	Location string `json:"location"`

	// Remote marks the position as fully remote, which makes the
	// location factor score 1.0 for every candidate.
	Remote bool `json:"remote"`

	// SalaryRange is the offered annual salary band.
	// Nil means the posting advertises no salary.
	SalaryRange *SalaryRange `json:"salary_range,omitempty"`

	PostedAt time.Time `json:"posted_at,omitempty"`

	// Category groups postings for recommendation diversity
	// ("engineering", "design", ...). Empty is treated as its own bucket.
	Category string `json:"category,omitempty"`
}

// JobRequirements holds the scored requirements of a posting.
// Zero values mean "no requirement" and score 1.0 for every candidate.
type JobRequirements struct {
	// Skills are required skill names, matched case-insensitively
	// with substring and fuzzy fallbacks.
	Skills []string `json:"skills"`

	// ExperienceYears is the minimum total experience in years.
	ExperienceYears float64 `json:"experience_years"`

	// Education is the minimum required education level.
	// EducationNone means no requirement.
	Education EducationLevel `json:"education"`
}

// SalaryRange is an annual salary band. Max may be zero, in which case
// the scoring engine derives it as Min * 1.3.
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max,omitempty"`
}

// EffectiveMax returns the explicit Max, or Min*1.3 when no Max is set.
func (r SalaryRange) EffectiveMax() float64 {
	if r.Max > 0 {
		return r.Max
	}
	return r.Min * 1.3
}

// EducationLevel is an ordinal education rank. Higher values strictly
// dominate lower ones when checking a job's minimum requirement.
type EducationLevel int

const (
	// EducationNone indicates no recorded or required education.
	EducationNone EducationLevel = 0
	// EducationHighSchool is a high-school diploma or equivalent.
	EducationHighSchool EducationLevel = 1
	// EducationAssociate is an associate degree or trade certification.
	EducationAssociate EducationLevel = 2
	// EducationBachelor is a bachelor's degree.
	EducationBachelor EducationLevel = 3
	// EducationMaster is a master's degree.
	EducationMaster EducationLevel = 4
	// EducationProfessional is a professional degree (MD, JD, MBA).
	EducationProfessional EducationLevel = 5
	// EducationDoctorate is a doctoral degree.
	EducationDoctorate EducationLevel = 6
)

// educationNames maps levels to their wire representation.
var educationNames = map[EducationLevel]string{
	EducationNone:         "none",
	EducationHighSchool:   "high-school",
	EducationAssociate:    "associate",
	EducationBachelor:     "bachelor",
	EducationMaster:       "master",
	EducationProfessional: "professional",
	EducationDoctorate:    "doctorate",
}

// String returns the wire name of the education level.
func (l EducationLevel) String() string {
	if name, ok := educationNames[l]; ok {
		return name
	}
	return "none"
}

// Rank returns the ordinal rank used by the scoring engine.
func (l EducationLevel) Rank() int {
	if l < EducationNone || l > EducationDoctorate {
		return 0
	}
	return int(l)
}

// ParseEducationLevel converts a wire name to an EducationLevel.
// Returns an error for unknown names so invalid input fails loudly
// at the boundary instead of silently scoring as "none".
func ParseEducationLevel(s string) (EducationLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	// Accept common aliases from upstream profile services.
	switch normalized {
	case "highschool", "high_school", "high school":
		normalized = "high-school"
	case "bachelors", "bsc", "ba":
		normalized = "bachelor"
	case "masters", "msc", "ma":
		normalized = "master"
	case "phd", "doctoral":
		normalized = "doctorate"
	}
	for level, name := range educationNames {
		if name == normalized {
			return level, nil
		}
	}
	return EducationNone, fmt.Errorf("unknown education level: %q", s)
}

// MarshalJSON serializes the level as its wire name.
func (l EducationLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts either the wire name or a bare ordinal.
func (l *EducationLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := ParseEducationLevel(s)
		if perr != nil {
			return perr
		}
		*l = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("education level must be a string or integer: %w", err)
	}
	if n < int(EducationNone) || n > int(EducationDoctorate) {
		return fmt.Errorf("education level out of range: %d", n)
	}
	*l = EducationLevel(n)
	return nil
}

// HighestEducation returns the candidate's highest completed level.
func (p *CandidateProfile) HighestEducation() EducationLevel {
	highest := EducationNone
	for _, e := range p.Education {
		if e.Degree > highest {
			highest = e.Degree
		}
	}
	return highest
}

// TotalExperienceYears sums the candidate's employment spans in years,
// counting open-ended entries up to the given reference time. Entries
// with a start after the reference or an end before the start contribute
// nothing rather than producing negative spans.
func (p *CandidateProfile) TotalExperienceYears(now time.Time) float64 {
	var months float64
	for _, e := range p.Experience {
		end := now
		if e.EndDate != nil {
			end = *e.EndDate
		}
		if !end.After(e.StartDate) {
			continue
		}
		months += end.Sub(e.StartDate).Hours() / (24 * 30.44)
	}
	return months / 12
}
