package models

const MaxReviews = 30

type AnalyzeRequest struct {
	Reviews []string `json:"reviews"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ReviewBatch holds at most MaxReviews reviews in their original order.
type ReviewBatch struct {
	reviews []string
}

// NewReviewBatch keeps the first MaxReviews reviews and silently drops the rest.
func NewReviewBatch(reviews []string) ReviewBatch {
	if len(reviews) > MaxReviews {
		reviews = reviews[:MaxReviews]
	}
	return ReviewBatch{reviews: append([]string(nil), reviews...)}
}

func (b ReviewBatch) Reviews() []string {
	return append([]string(nil), b.reviews...)
}

func (b ReviewBatch) Len() int {
	return len(b.reviews)
}

func (b ReviewBatch) Empty() bool {
	return len(b.reviews) == 0
}
