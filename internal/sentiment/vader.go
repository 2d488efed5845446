package sentiment

import (
	"regexp"

	"github.com/jonreiter/govader"
)

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// VADERClassifier scores text with the VADER lexicon and maps the compound
// score onto the closed label set.
type VADERClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADERClassifier returns a ready-to-use classifier. The analyzer carries
// no mutable state across calls.
func NewVADERClassifier() *VADERClassifier {
	return &VADERClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Classify scores the text and returns a label from the closed set. URLs are
// stripped first; they carry no sentiment and skew tokenization.
func (c *VADERClassifier) Classify(text string) (string, error) {
	plain := urlPattern.ReplaceAllString(text, "")

	score := c.analyzer.PolarityScores(plain).Compound

	var code int
	switch {
	case score >= 0.20:
		code = CodePositive
	case score <= -0.20:
		code = CodeNegative
	default:
		code = CodeNeutral
	}

	return Label(code), nil
}
