package projection

import (
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// riskRule flags a risk on a finished report and names its mitigation
type riskRule struct {
	risk       string
	mitigation string
	applies    func(r *domain.ValidationReport, ps domain.ProjectionScenario) bool
}

// riskRules is evaluated in order; report order follows it
var riskRules = []riskRule{
	{
		risk:       RiskBreakEvenNotReached,
		mitigation: MitigationRevisitModel,
		applies: func(r *domain.ValidationReport, _ domain.ProjectionScenario) bool {
			return !r.BreakEvenReached
		},
	},
	{
		risk:       RiskBreakEvenDelayed,
		mitigation: MitigationPhasedFunding,
		applies: func(r *domain.ValidationReport, _ domain.ProjectionScenario) bool {
			return r.BreakEvenReached && r.ActualBreakEvenWeeks > r.ProjectedBreakEvenWeeks*(1+BreakEvenDelayTolerance)
		},
	},
	{
		risk:       RiskRevenueShortfall,
		mitigation: MitigationGrowVolume,
		applies: func(r *domain.ValidationReport, _ domain.ProjectionScenario) bool {
			return r.RevenueVariancePct < ShortfallVariancePct
		},
	},
	{
		risk:       RiskROIShortfall,
		mitigation: MitigationReduceCosts,
		applies: func(r *domain.ValidationReport, _ domain.ProjectionScenario) bool {
			return r.ROIVariancePct < ShortfallVariancePct
		},
	},
	{
		risk:       RiskDecliningRevenue,
		mitigation: MitigationRetention,
		applies: func(r *domain.ValidationReport, _ domain.ProjectionScenario) bool {
			return r.GrowthPattern == domain.GrowthDeclining
		},
	},
	{
		risk:       RiskLowParticipation,
		mitigation: MitigationIncentives,
		applies: func(_ *domain.ValidationReport, ps domain.ProjectionScenario) bool {
			return ps.ParticipationRate < LowParticipationRate
		},
	},
	{
		risk:       RiskPersistentInequality,
		mitigation: MitigationTargetedSupport,
		applies: func(r *domain.ValidationReport, _ domain.ProjectionScenario) bool {
			return r.FinalGini > HighInequalityGini
		},
	},
}

// AssessRisks returns the risk factors that apply to r with one mitigation each
func AssessRisks(r *domain.ValidationReport, ps domain.ProjectionScenario) (risks, mitigations []string) {
	risks = make([]string, 0)
	mitigations = make([]string, 0)
	for _, rule := range riskRules {
		if rule.applies(r, ps) {
			risks = append(risks, rule.risk)
			mitigations = append(mitigations, rule.mitigation)
		}
	}
	return risks, mitigations
}

// CompositeScore ranks a report in [0, 100] from its confidence and how much
// of the projected revenue, ROI and break-even it attained
func CompositeScore(r *domain.ValidationReport) float64 {
	revenue := attainment(r.ProjectedRevenue, r.WeightedRevenue)
	roi := attainment(float64(r.ProjectedROIPct), float64(r.ActualROIPct))

	breakEven := 0.0
	switch {
	case !r.BreakEvenReached:
	case r.ActualBreakEvenWeeks <= r.ProjectedBreakEvenWeeks:
		breakEven = 1
	default:
		breakEven = r.ProjectedBreakEvenWeeks / r.ActualBreakEvenWeeks
	}

	score := ScoreWeightConfidence*confidenceScores[r.ConfidenceLevel] +
		ScoreWeightRevenue*revenue +
		ScoreWeightROI*roi +
		ScoreWeightBreakEven*breakEven
	return score * 100
}

// attainment is actual/projected capped at attainmentCap and scaled to [0, 1]
func attainment(projected, actual float64) float64 {
	if projected <= 0 {
		if actual >= projected {
			return 1
		}
		return 0
	}
	return utils.Clamp(actual/projected, 0, attainmentCap) / attainmentCap
}
