/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package assess

import "math"

// Band represents an ordered risk tier. It applies to individual indices and
// to the composite score; BandLow is always the favourable end.
type Band string

// Band values represent the supported risk tiers.
const (
	BandLow           Band = "low"
	BandIndeterminate Band = "indeterminate"
	BandHigh          Band = "high"
)

// Composite score thresholds. Scores are integers, so the bands partition
// [0,100] exactly: 0-59 high, 60-84 indeterminate, 85-100 low.
const (
	healthLowRiskMin       = 85
	healthIndeterminateMin = 60
)

func newIndexResult(idx Index, value float64) IndexResult {
	band, label, action := interpret(idx, value)

	return IndexResult{
		Index:  idx,
		Value:  value,
		Band:   band,
		Label:  label,
		Action: action,
	}
}

// interpret maps an index value onto its band, display label, and (for FLI)
// recommended action. Boundary handling: a value equal to a lower cutoff
// belongs to the indeterminate band, a value above the upper cutoff to the
// high band.
func interpret(idx Index, value float64) (Band, string, string) {
	switch idx {
	case IndexFLI:
		switch {
		case value < 30:
			return BandLow, "Low (fatty liver unlikely)", "Maintain lifestyle; periodic monitoring."
		case value < 60:
			return BandIndeterminate, "Intermediate (cannot rule in/out)", "Consider ultrasound or repeat after lifestyle optimisation."
		default:
			return BandHigh, "High (fatty liver likely)", "Proceed to fibrosis staging (NFS, FIB-4, APRI)."
		}
	case IndexFIB4:
		switch {
		case value < 1.3:
			return BandLow, "Low (rules out advanced fibrosis)", ""
		case value <= 2.67:
			return BandIndeterminate, "Indeterminate", ""
		default:
			return BandHigh, "High (advanced fibrosis likely)", ""
		}
	case IndexAPRI:
		switch {
		case value < 0.5:
			return BandLow, "Low", ""
		case value <= 1.5:
			return BandIndeterminate, "Indeterminate", ""
		default:
			return BandHigh, "High (significant fibrosis risk)", ""
		}
	case IndexNFS:
		switch {
		case value < -1.455:
			return BandLow, "Low", ""
		case value <= 0.676:
			return BandIndeterminate, "Indeterminate", ""
		default:
			return BandHigh, "High", ""
		}
	default:
		return BandIndeterminate, "Unknown index", ""
	}
}

// LiverHealth combines the three fibrosis outcomes into the 0-100 composite.
// It returns an IncompleteError naming every missing index when any of the
// three is not computable; it never substitutes defaults or reweights.
func LiverHealth(fib4, apri, nfs Outcome) (HealthScore, error) {
	var missing []Index

	for _, o := range []Outcome{fib4, apri, nfs} {
		if !o.Computable() {
			missing = append(missing, o.Index)
		}
	}

	if len(missing) > 0 {
		return HealthScore{}, &IncompleteError{Missing: missing}
	}

	fib4Sub := fib4Subscore(fib4.Result.Value)
	apriSub := apriSubscore(apri.Result.Value)
	nfsSub := nfsSubscore(nfs.Result.Value)

	combined := 0.5*fib4Sub + 0.25*apriSub + 0.25*nfsSub

	score := int(math.Round(clamp(combined, 0, 100)))
	band, label, advice := interpretHealth(score)

	return HealthScore{
		Score:  score,
		Band:   band,
		Label:  label,
		Advice: advice,

		FIB4Subscore: fib4Sub,
		APRISubscore: apriSub,
		NFSSubscore:  nfsSub,
	}, nil
}

func interpretHealth(score int) (Band, string, string) {
	switch {
	case score >= healthLowRiskMin:
		return BandLow, "Low risk", "Low probability of advanced fibrosis; routine monitoring."
	case score >= healthIndeterminateMin:
		return BandIndeterminate, "Indeterminate", "Indeterminate probability; consider elastography (FibroScan)."
	default:
		return BandHigh, "High risk", "High probability of advanced fibrosis; hepatology referral, imaging/workup."
	}
}

// Subscores translate each fibrosis index onto a shared 0-100 scale (higher
// is better) so the composite can weight them. Each ramp is continuous at
// its band boundaries and floors at the high-risk plateau.

func fib4Subscore(x float64) float64 {
	switch {
	case x < 1.3:
		return 100
	case x <= 2.67:
		return math.Max(40, 100-(x-1.3)*(60/(2.67-1.3)))
	default:
		return 20
	}
}

func apriSubscore(x float64) float64 {
	switch {
	case x < 0.5:
		return 100
	case x <= 1.5:
		return math.Max(60, 100-(x-0.5)*40)
	case x <= 2.0:
		return math.Max(20, 60-(x-1.5)*(40/0.5))
	default:
		return 20
	}
}

func nfsSubscore(x float64) float64 {
	switch {
	case x < -1.455:
		return 100
	case x <= 0.676:
		return 50
	default:
		return 20
	}
}
