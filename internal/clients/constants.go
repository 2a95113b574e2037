package clients

const (
	USER_AGENT = "review-analyzer-client/1.0 (+https://github.com/spacesedan/review-analyzer)"

	OPENROUTER_REFERER_HEADER = "HTTP-Referer"
	OPENROUTER_TITLE_HEADER   = "X-Title"
)
