package catalog

import (
	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

// Exposure timeframes for the HIV risk assessment, index-aligned with the
// options of question 1. They drive window-period retest guidance, not score.
const (
	TimeframeWithin72Hours assessment.Timeframe = "within_72_hours"
	TimeframeUnderFourWeeks assessment.Timeframe = "under_four_weeks"
	TimeframeOneToThreeMonths assessment.Timeframe = "one_to_three_months"
	TimeframeOverThreeMonths assessment.Timeframe = "over_three_months"
)

const (
	TierLow      assessment.Tier = "low"
	TierModerate assessment.Tier = "moderate"
	TierHigh     assessment.Tier = "high"
)

// HIVRisk is the HIV exposure risk self-assessment.
var HIVRisk = assessment.Questionnaire{
	ID:      "hiv-risk",
	Title:   "HIV Risk Assessment",
	Summary: "Estimate your exposure risk and when to test.",
	Questions: []assessment.Question{
		{
			ID:      1,
			Section: "Exposure",
			Title:   "When did the possible exposure happen?",
			Type:    assessment.SingleChoice,
			Options: []assessment.Option{
				{Text: "Within the last 72 hours", Score: 10},
				{Text: "3 days to 4 weeks ago", Score: 10},
				{Text: "1 to 3 months ago", Score: 10},
				{Text: "More than 3 months ago", Score: 5},
			},
			Note: "Timing matters: within 72 hours, post-exposure prophylaxis may still be an option.",
		},
		{
			ID:       2,
			Section:  "Exposure",
			Title:    "What kind of exposure was it?",
			Type:     assessment.MultipleChoice,
			MaxScore: 25,
			Options: []assessment.Option{
				{Text: "Vaginal sex without a condom", Score: 10},
				{Text: "Anal sex without a condom", Score: 15},
				{Text: "Shared needles or injection equipment", Score: 15},
				{Text: "Oral sex without protection", Score: 5},
				{Text: "Contact with blood on broken skin", Score: 8},
			},
		},
		{
			ID:      3,
			Section: "Partner",
			Title:   "What do you know about the other person's HIV status?",
			Type:    assessment.SingleChoice,
			Options: []assessment.Option{
				{Text: "HIV positive, not on treatment", Score: 20},
				{Text: "HIV positive, on treatment with undetectable viral load", Score: 5},
				{Text: "Status unknown", Score: 10},
				{Text: "Recently tested negative", Score: 0},
			},
		},
		{
			ID:      4,
			Section: "History",
			Title:   "Have you had a sexually transmitted infection in the last year?",
			Type:    assessment.SingleChoice,
			Options: []assessment.Option{
				{Text: "Yes", Score: 10},
				{Text: "No", Score: 0},
				{Text: "Not sure", Score: 5},
			},
		},
		{
			ID:      5,
			Section: "Protection",
			Title:   "Were you taking PrEP or did you start PEP?",
			Type:    assessment.SingleChoice,
			Options: []assessment.Option{
				{Text: "On PrEP consistently", Score: 0},
				{Text: "Started PEP within 72 hours", Score: 2},
				{Text: "Neither", Score: 10},
			},
		},
		{
			ID:       6,
			Section:  "Symptoms",
			Title:    "Any of these symptoms in the last month?",
			Type:     assessment.MultipleChoice,
			MaxScore: 10,
			Options: []assessment.Option{
				{Text: "Fever", Score: 4},
				{Text: "Rash", Score: 4},
				{Text: "Swollen lymph nodes", Score: 4},
				{Text: "Severe sore throat", Score: 3},
				{Text: "None of the above", Score: 0},
			},
			Note: "Early symptoms are non-specific; only a test can confirm.",
		},
	},
	Tiers: assessment.ThresholdTable{
		{MinScore: 45, Tier: TierHigh},
		{MinScore: 20, Tier: TierModerate},
		{MinScore: 0, Tier: TierLow},
	},
	TierTitles: map[assessment.Tier]string{
		TierLow:      "Low risk",
		TierModerate: "Moderate risk",
		TierHigh:     "High risk",
	},
	Recommendations: map[assessment.Tier][]string{
		TierLow: {
			"Your answers suggest a low exposure risk.",
			"Keep using condoms and consider routine testing once a year.",
		},
		TierModerate: {
			"Your answers suggest a moderate exposure risk.",
			"Get an HIV test at the suggested dates below.",
			"Avoid further unprotected exposure until you have a result.",
		},
		TierHigh: {
			"Your answers suggest a high exposure risk.",
			"See a healthcare provider as soon as possible.",
			"If the exposure was within 72 hours, ask about post-exposure prophylaxis today.",
			"Test at the suggested dates below and avoid further exposure meanwhile.",
		},
	},
	TimeframeFor: 1,
	Timeframes: []assessment.Timeframe{
		TimeframeWithin72Hours,
		TimeframeUnderFourWeeks,
		TimeframeOneToThreeMonths,
		TimeframeOverThreeMonths,
	},
	// Day offsets from today for suggested retests, per window period.
	RetestOffsets: map[assessment.Timeframe][]int{
		TimeframeWithin72Hours:    {28, 90},
		TimeframeUnderFourWeeks:   {28, 90},
		TimeframeOneToThreeMonths: {0, 90},
		TimeframeOverThreeMonths:  {0},
	},
}
