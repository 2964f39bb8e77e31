// Package narrative turns a traditional/cooperative comparison into prose.
package narrative

import (
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

// KeyEvent is a notable week in the cooperative run
type KeyEvent struct {
	Week        int    `json:"week"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Phase describes one third of the cooperative run
type Phase struct {
	Period          string `json:"period"`
	Name            string `json:"type"`
	Characteristics string `json:"characteristics"`
	AvgWealth       string `json:"avg_wealth"`
	PovertyRate     string `json:"poverty_rate"`
	Gini            string `json:"gini"`
}

// Summary is the narrative of a comparison run
type Summary struct {
	Title         string   `json:"title"`
	Overview      string   `json:"overview"`
	WealthImpact  string   `json:"wealth_impact"`
	WealthDetails string   `json:"wealth_details"`
	Equality      string   `json:"equality"`
	GiniMovement  string   `json:"gini_movement"`
	Distribution  string   `json:"distribution"`
	Poverty       string   `json:"poverty"`
	Phases        []Phase  `json:"phase_analysis"`
	KeyEvents     []string `json:"key_events"`
	Conclusion    string   `json:"conclusion"`
}

var (
	printer = message.NewPrinter(language.English)
	title   = cases.Title(language.English)
)

// Summarize narrates how the cooperative run evolved against the traditional one.
// Both series must cover the same weeks.
func Summarize(traditional, cooperative []domain.WeeklySnapshot, events []KeyEvent) Summary {
	if len(cooperative) == 0 || len(traditional) == 0 {
		return Summary{Title: "Error", Overview: NoHistory}
	}
	first, last := cooperative[0], cooperative[len(cooperative)-1]
	lastTrad := traditional[len(traditional)-1]

	wealthChange := 0.0
	if first.TotalWealth != 0 {
		wealthChange = (last.TotalWealth - first.TotalWealth) / first.TotalWealth
	}
	giniChange := last.Gini - first.Gini

	s := Summary{Title: Title}
	s.Overview = printer.Sprintf("Over %d weeks, the community's economic system under the cooperative scenario "+
		"showed notable changes compared to the traditional scenario.", len(cooperative))
	s.WealthImpact = printer.Sprintf("Total cooperative wealth %s by %.1f%% compared to its start.",
		pick(wealthChange > 0, "grew", "declined"), math.Abs(wealthChange)*100)
	s.WealthDetails = printer.Sprintf("Average cooperative wealth finished at $%.2f, compared to $%.2f under the traditional scenario. "+
		"The cooperative distribution became %s unequal over time.",
		last.AverageWealth, lastTrad.AverageWealth, pick(giniChange > 0, "more", "less"))
	s.Equality = printer.Sprintf("Cooperative wealth inequality %s by %.1f%% (absolute Gini change).",
		pick(giniChange < 0, "decreased", "increased"), math.Abs(giniChange)*100)
	s.GiniMovement = printer.Sprintf("The cooperative Gini coefficient moved from %.3f to %.3f (vs %.3f traditional).",
		first.Gini, last.Gini, lastTrad.Gini)
	s.Distribution = printer.Sprintf("The poorest 20%% share of cooperative wealth changed from %.1f%% to %.1f%%. "+
		"The wealth gap (top 20%% / bottom 20%%) finished at %s cooperative (vs %s traditional).",
		first.BottomQuintileShare*100, last.BottomQuintileShare*100, formatGap(last), formatGap(lastTrad))
	s.Poverty = printer.Sprintf("The cooperative poverty rate %s, finishing at %.1f%% (vs %.1f%% traditional).",
		pick(last.PovertyRate < first.PovertyRate, "decreased", "increased or stayed the same"),
		last.PovertyRate*100, lastTrad.PovertyRate*100)
	s.Phases = Phases(cooperative)
	s.Conclusion = Conclusion(traditional, cooperative)

	if len(events) == 0 {
		s.KeyEvents = []string{NoKeyEvents}
	} else {
		for _, e := range events {
			s.KeyEvents = append(s.KeyEvents, e.Description)
		}
	}
	return s
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func formatGap(s domain.WeeklySnapshot) string {
	if !s.WealthGapDefined {
		return "N/A"
	}
	return printer.Sprintf("%.1fx", s.WealthGap)
}

func growth(start, end float64) float64 {
	if start <= DegenerateTotalWealth {
		return 0
	}
	return (end - start) / start
}

// Phases splits the series into thirds and characterises each.
// Series shorter than MinPhaseWeeks yield no phases.
func Phases(history []domain.WeeklySnapshot) []Phase {
	if len(history) < MinPhaseWeeks {
		return nil
	}
	n := len(history) / 3
	bounds := [][2]int{{0, n}, {n, 2 * n}, {2 * n, len(history)}}
	names := []string{phaseInitial, phaseDevelopment, phaseMaturity}

	phases := make([]Phase, 0, len(bounds))
	previous := 0.0
	for i, b := range bounds {
		data := history[b[0]:b[1]]
		start, end := data[0], data[len(data)-1]
		g := growth(start.TotalWealth, end.TotalWealth)

		var character string
		switch i {
		case 0:
			switch {
			case math.Abs(g) < AdaptationThreshold:
				character = "Adaptation"
			case g > RapidGrowthThreshold:
				character = "Rapid Growth"
			default:
				character = "Steady Growth"
			}
		case 1:
			switch {
			case g < previous:
				character = "Consolidation"
			case g > previous:
				character = "Acceleration"
			default:
				character = "Stabilization"
			}
		default:
			switch {
			case math.Abs(g) < MaturityThreshold:
				character = "Maturity"
			case g > 0:
				character = "Continued Growth"
			default:
				character = "Contraction"
			}
		}
		previous = g

		phases = append(phases, Phase{
			Period:          printer.Sprintf("Weeks %d-%d", start.Week, end.Week),
			Name:            title.String(names[i]),
			Characteristics: printer.Sprintf("%s (Wealth Change: %+.1f%%)", character, g*100),
			AvgWealth:       printer.Sprintf("$%.2f", end.AverageWealth),
			PovertyRate:     printer.Sprintf("%.1f%%", end.PovertyRate*100),
			Gini:            printer.Sprintf("%.3f", end.Gini),
		})
	}
	return phases
}

// Conclusion summarises the cooperative outcome and how it ended against the traditional run
func Conclusion(traditional, cooperative []domain.WeeklySnapshot) string {
	if len(cooperative) == 0 || len(traditional) == 0 {
		return "No simulation data to generate conclusion."
	}
	first, last := cooperative[0], cooperative[len(cooperative)-1]
	lastTrad := traditional[len(traditional)-1]

	wealthChange := growth(first.TotalWealth, last.TotalWealth)
	giniChange := last.Gini - first.Gini
	povertyChange := last.PovertyRate - first.PovertyRate

	var success string
	switch {
	case wealthChange > SuccessWealthGrowth && povertyChange < 0:
		success = "successful"
	case wealthChange >= 0 && povertyChange <= 0:
		success = "moderately successful"
	default:
		success = "challenging"
	}

	var equity string
	switch {
	case giniChange < -EquityShiftThreshold:
		equity = "more equitable"
	case giniChange < 0:
		equity = "slightly more equitable"
	case giniChange > EquityShiftThreshold:
		equity = "less equitable"
	default:
		equity = "equity neutral"
	}

	out := printer.Sprintf("The simulation suggests a %s outcome for the cooperative model over %d weeks. "+
		"Compared to its starting point, the community became %s. ", success, len(cooperative), equity)

	wealthDiff := last.TotalWealth - lastTrad.TotalWealth
	if wealthDiff > 0 {
		out += printer.Sprintf("The cooperative scenario ended with $%.2f more total wealth than the traditional scenario. ", wealthDiff)
	} else {
		out += printer.Sprintf("The cooperative scenario ended with $%.2f less total wealth than the traditional scenario. ", math.Abs(wealthDiff))
	}

	giniDiff := last.Gini - lastTrad.Gini
	switch {
	case giniDiff < -GiniSimilarityBand:
		out += printer.Sprintf("It also finished with lower inequality (Gini diff: %.3f).", giniDiff)
	case giniDiff > GiniSimilarityBand:
		out += printer.Sprintf("It finished with higher inequality (Gini diff: %.3f).", giniDiff)
	default:
		out += "Final inequality levels were similar between scenarios."
	}
	return out
}
