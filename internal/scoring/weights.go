// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package scoring

import (
	"fmt"
	"math"
)

// weightSumTolerance is the permitted deviation of a weight vector's sum
// from 1.0, absorbing float accumulation noise.
const weightSumTolerance = 0.001

// FactorWeights distributes the overall score across the five factors.
// A valid vector has non-negative components summing to 1.
type FactorWeights struct {
	Skills     float64 `json:"skills" koanf:"skills"`
	Experience float64 `json:"experience" koanf:"experience"`
	Education  float64 `json:"education" koanf:"education"`
	Location   float64 `json:"location" koanf:"location"`
	Salary     float64 `json:"salary" koanf:"salary"`
}

// DefaultWeights returns the standard factor weighting: skills dominate,
// salary matters least.
func DefaultWeights() FactorWeights {
	return FactorWeights{
		Skills:     0.40,
		Experience: 0.30,
		Education:  0.15,
		Location:   0.10,
		Salary:     0.05,
	}
}

// Sum returns the total of all components.
func (w FactorWeights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Location + w.Salary
}

// Validate rejects vectors with negative components or a sum away from 1.
func (w FactorWeights) Validate() error {
	components := map[string]float64{
		"skills":     w.Skills,
		"experience": w.Experience,
		"education":  w.Education,
		"location":   w.Location,
		"salary":     w.Salary,
	}
	for name, v := range components {
		if v < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %f", name, v)
		}
	}

	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// Normalize rescales the vector to sum to 1. A zero vector normalizes to
// the defaults rather than dividing by zero.
func (w FactorWeights) Normalize() FactorWeights {
	sum := w.Sum()
	if sum == 0 {
		return DefaultWeights()
	}
	return FactorWeights{
		Skills:     w.Skills / sum,
		Experience: w.Experience / sum,
		Education:  w.Education / sum,
		Location:   w.Location / sum,
		Salary:     w.Salary / sum,
	}
}
