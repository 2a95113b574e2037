package sentiment

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// PolarityScorer scores a single text in [-1, 1]. Implementations must be
// deterministic for identical input.
type PolarityScorer interface {
	Polarity(text string) float64
}

// VaderScorer uses the VADER compound score on markdown-stripped text.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Polarity(text string) float64 {
	plainText := ConvertMarkdownToText(text)
	if plainText == "" {
		return 0
	}
	return v.analyzer.PolarityScores(plainText).Compound
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders only the textual content of markdown input,
// dropping formatting, link targets and bare URLs.
func ConvertMarkdownToText(input string) string {
	md := blackfriday.New(blackfriday.WithNoExtensions())
	root := md.Parse([]byte(input))

	var sb strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock:
			if entering {
				sb.Write(node.Literal)
			}
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item,
			blackfriday.Softbreak, blackfriday.Hardbreak, blackfriday.TableCell:
			sb.WriteByte(' ')
		}
		return blackfriday.GoToNext
	})

	plainText := strings.Join(strings.Fields(sb.String()), " ")
	return strings.TrimSpace(strings.Join(strings.Fields(RemoveLinks(plainText)), " "))
}

func clampPolarity(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p > 1:
		return 1
	case p < -1:
		return -1
	default:
		return p
	}
}
