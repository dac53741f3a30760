package ticket

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxSentimentScore is the upper bound of a ticket's sentiment score.
const MaxSentimentScore = 100

type sentimentTrigger struct {
	word   string
	points int
}

// Matching is by substring, so overlapping words can each score.
var sentimentTriggers = []sentimentTrigger{
	{"urgent", 20},
	{"refund", 50},
	{"cancel", 50},
	{"frustrated", 40},
	{"broken", 20},
	{"down", 30},
	{"error", 10},
	{"fail", 10},
	{"emergency", 30},
	{"asap", 10},
}

// AnalyzeSentiment scores text against the trigger table. The result is in [0, 100].
func AnalyzeSentiment(text string) int {
	lowered := cases.Lower(language.Und).String(text)
	score := 0
	for _, trig := range sentimentTriggers {
		if strings.Contains(lowered, trig.word) {
			score += trig.points
		}
	}
	return clampSentiment(score)
}

// AccumulateSentiment adds delta to current, keeping the result in [0, 100].
func AccumulateSentiment(current, delta int) int {
	return clampSentiment(current + delta)
}

func clampSentiment(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxSentimentScore {
		return MaxSentimentScore
	}
	return v
}
