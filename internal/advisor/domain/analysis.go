// Package domain defines the impact-analysis model for missed daily targets.
package domain

import "context"

// RiskLevel grades how badly a missed day threatens the user's goals.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// IsValid reports whether the level is one of the known grades.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

// ImpactAnalysis is the structured assessment of a missed target.
type ImpactAnalysis struct {
	RiskLevel           RiskLevel `json:"riskLevel"`
	ImpactDescription   string    `json:"impactDescription"`
	AdjustedPlan        string    `json:"adjustedPlan"`
	MotivationalMessage string    `json:"motivationalMessage"`
}

// FallbackAnalysis is substituted whenever the text-generation service is
// unavailable. Closing out a day must never block on that service.
func FallbackAnalysis() ImpactAnalysis {
	return ImpactAnalysis{
		RiskLevel:           RiskMedium,
		ImpactDescription:   "Unable to analyze precise impact due to connection error. However, missing daily targets will delay your Short Term goal completion.",
		AdjustedPlan:        "Try to solve +1 problem tomorrow to make up for it.",
		MotivationalMessage: "Keep going, consistency is key!",
	}
}

// GoalSnapshot is the slice of goal state handed to the analyzer.
type GoalSnapshot struct {
	Description string
	Target      int
	Progress    int
	Deadline    string
}

// MissContext describes the missed day being analyzed.
type MissContext struct {
	Reason      string
	Deficit     int
	DailyTarget int
	SolvedToday int
	Streak      int
	ShortTerm   *GoalSnapshot
	LongTerm    *GoalSnapshot
}

// Analyzer produces an impact analysis for a missed day.
type Analyzer interface {
	AnalyzeMiss(ctx context.Context, miss MissContext) (ImpactAnalysis, error)
}
