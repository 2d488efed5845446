// Package sentiment assigns one of a closed set of sentiment labels to post
// text. The label set is fixed at ingestion time; stored labels are never
// re-derived.
package sentiment

// Classifier codes, ordered by polarity.
const (
	CodeNegative = 0
	CodeNeutral  = 1
	CodePositive = 2
)

// The closed label set.
const (
	Negative = "negative"
	Neutral  = "neutral"
	Positive = "positive"
)

// Label maps a classifier code onto the closed label set. Any code outside
// the known set resolves to Neutral.
func Label(code int) string {
	switch code {
	case CodeNegative:
		return Negative
	case CodePositive:
		return Positive
	default:
		return Neutral
	}
}

// Classifier assigns a sentiment label to raw post text. Implementations
// must only return labels from the closed set. A non-nil error aborts the
// batch being built by the caller.
type Classifier interface {
	Classify(text string) (string, error)
}
