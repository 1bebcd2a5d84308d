package catalog

import (
	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

// Time-since-intercourse buckets for the pregnancy self-check, index-aligned
// with the options of question 1. They determine when a home test becomes
// reliable.
const (
	TimingUnderOneWeek  assessment.Timeframe = "under_one_week"
	TimingOneToTwoWeeks assessment.Timeframe = "one_to_two_weeks"
	TimingTwoToFourWeeks assessment.Timeframe = "two_to_four_weeks"
	TimingOverFourWeeks assessment.Timeframe = "over_four_weeks"
)

// PregnancyProbability is the pregnancy probability self-check.
var PregnancyProbability = assessment.Questionnaire{
	ID:      "pregnancy-probability",
	Title:   "Pregnancy Probability Check",
	Summary: "Estimate how likely pregnancy is and when to take a test.",
	Questions: []assessment.Question{
		{
			ID:      1,
			Section: "Timing",
			Title:   "How long ago was the intercourse?",
			Type:    assessment.SingleChoice,
			Options: []assessment.Option{
				{Text: "Less than a week ago", Score: 5},
				{Text: "1 to 2 weeks ago", Score: 10},
				{Text: "2 to 4 weeks ago", Score: 10},
				{Text: "More than 4 weeks ago", Score: 5},
			},
		},
		{
			ID:      2,
			Section: "Cycle",
			Title:   "Where in your cycle did it happen?",
			Type:    assessment.SingleChoice,
			Options: []assessment.Option{
				{Text: "Around the middle of my cycle (days 10-17)", Score: 25},
				{Text: "Just after my period ended", Score: 10},
				{Text: "During my period", Score: 5},
				{Text: "In the week before my period", Score: 8},
				{Text: "I'm not sure", Score: 15},
			},
			Note: "Mid-cycle days carry the highest chance of conception.",
		},
		{
			ID:       3,
			Section:  "Contraception",
			Title:    "What contraception was used?",
			Type:     assessment.MultipleChoice,
			MaxScore: 25,
			Options: []assessment.Option{
				{Text: "None", Score: 25},
				{Text: "Condom that broke or slipped", Score: 20},
				{Text: "Withdrawal only", Score: 15},
				{Text: "Missed pill(s) that week", Score: 12},
				{Text: "Emergency contraception taken after", Score: 5},
			},
		},
		{
			ID:      4,
			Section: "Cycle",
			Title:   "Is your period late?",
			Type:    assessment.SingleChoice,
			Options: []assessment.Option{
				{Text: "Yes, more than a week late", Score: 25},
				{Text: "Yes, a few days late", Score: 15},
				{Text: "No, not due yet", Score: 0},
				{Text: "My cycle is too irregular to tell", Score: 10},
			},
		},
		{
			ID:       5,
			Section:  "Symptoms",
			Title:    "Any of these symptoms?",
			Type:     assessment.MultipleChoice,
			MaxScore: 15,
			Options: []assessment.Option{
				{Text: "Nausea, especially in the morning", Score: 6},
				{Text: "Breast tenderness", Score: 4},
				{Text: "Unusual fatigue", Score: 4},
				{Text: "Light spotting", Score: 3},
				{Text: "None of the above", Score: 0},
			},
		},
	},
	Tiers: assessment.ThresholdTable{
		{MinScore: 60, Tier: TierHigh},
		{MinScore: 30, Tier: TierModerate},
		{MinScore: 0, Tier: TierLow},
	},
	TierTitles: map[assessment.Tier]string{
		TierLow:      "Low probability",
		TierModerate: "Moderate probability",
		TierHigh:     "High probability",
	},
	Recommendations: map[assessment.Tier][]string{
		TierLow: {
			"Pregnancy looks unlikely from your answers.",
			"If your period is more than a week late, take a test anyway.",
		},
		TierModerate: {
			"Pregnancy is possible from your answers.",
			"Take a home test at the suggested date below for a reliable result.",
		},
		TierHigh: {
			"Your answers point to a real chance of pregnancy.",
			"Take a home test at the suggested date below.",
			"If the test is positive, contact a healthcare provider.",
		},
	},
	TimeframeFor: 1,
	Timeframes: []assessment.Timeframe{
		TimingUnderOneWeek,
		TimingOneToTwoWeeks,
		TimingTwoToFourWeeks,
		TimingOverFourWeeks,
	},
	// hCG takes about two weeks after conception to become detectable.
	RetestOffsets: map[assessment.Timeframe][]int{
		TimingUnderOneWeek:   {10, 17},
		TimingOneToTwoWeeks:  {3, 10},
		TimingTwoToFourWeeks: {0},
		TimingOverFourWeeks:  {0},
	},
}
