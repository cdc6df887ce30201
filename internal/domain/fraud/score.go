package fraud

// RiskLevel enum untuk audit log
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Severity deductions: high -25, medium -10, low -5.
const (
	deductHigh   = 25
	deductMedium = 10
	deductLow    = 5
)

// ConfidenceScore starts at 100 and subtracts per factor, floored at 0.
func ConfidenceScore(factors []RiskFactor) int {
	score := 100
	for _, f := range factors {
		switch f.Severity {
		case SeverityHigh:
			score -= deductHigh
		case SeverityMedium:
			score -= deductMedium
		case SeverityLow:
			score -= deductLow
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// HighRiskCount counts the high severity factors.
func HighRiskCount(factors []RiskFactor) int {
	n := 0
	for _, f := range factors {
		if f.Severity == SeverityHigh {
			n++
		}
	}
	return n
}

// RecommendAction applies the decision table in order, first match wins.
func RecommendAction(score, highRiskFactors int) Action {
	switch {
	case highRiskFactors >= 3 || score < 30:
		return ActionReject
	case highRiskFactors >= 1 || score < 70:
		return ActionReview
	default:
		return ActionApprove
	}
}

// RiskLevelFor maps a confidence score to the audit-log risk level.
func RiskLevelFor(score int) RiskLevel {
	if score >= 80 {
		return RiskLow
	}
	if score >= 60 {
		return RiskMedium
	}
	return RiskHigh
}

// SuspiciousElements collects descriptions of all high severity factors.
func SuspiciousElements(factors []RiskFactor) []string {
	out := make([]string, 0, len(factors))
	for _, f := range factors {
		if f.Severity == SeverityHigh {
			out = append(out, f.Description)
		}
	}
	return out
}

// BuildResult assembles the immutable result from the merged factor list.
func BuildResult(id AnalysisID, factors []RiskFactor, details AnalysisDetails) Result {
	score := ConfidenceScore(factors)
	return Result{
		ID:                 id,
		IsAuthentic:        score >= 70,
		ConfidenceScore:    score,
		SuspiciousElements: SuspiciousElements(factors),
		RecommendedAction:  RecommendAction(score, HighRiskCount(factors)),
		AnalysisDetails:    details,
		RiskFactors:        factors,
	}
}
