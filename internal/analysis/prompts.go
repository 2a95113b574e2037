package analysis

import "strings"

const SystemInstruction = "You are a review summarization expert. " +
	"Your response MUST be a single, clean JSON object and nothing else. " +
	"Do not wrap it in markdown blocks (like ```json). " +
	"The JSON object must have these exact keys: 'pros' (list of strings), 'cons' (list of strings), " +
	"'overall_sentiment' (string: 'Positive', 'Negative', or 'Mixed'), 'score' (number 0-5), " +
	"and 'one_line_summary' (concise string)."

const userContentHeader = "Here are the reviews to analyze:\n"

// BuildUserContent renders each review as a "- " bullet under a fixed header.
func BuildUserContent(reviews []string) string {
	lines := make([]string, len(reviews))
	for i, r := range reviews {
		lines[i] = "- " + r
	}
	return userContentHeader + strings.Join(lines, "\n")
}
