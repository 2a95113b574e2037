package models

import "encoding/json"

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentMixed    SentimentLabel = "Mixed"
)

const (
	SourceOpenRouter = "openrouter"
	SourceFallback   = "fallback"
)

// SummaryResult is the summary shape produced by the local summarizer.
// Score is the mean polarity in [-1, 1], not the 0-5 scale the model is asked for.
type SummaryResult struct {
	Pros             []string       `json:"pros"`
	Cons             []string       `json:"cons"`
	OverallSentiment SentimentLabel `json:"overall_sentiment"`
	Score            float64        `json:"score"`
	OneLineSummary   string         `json:"one_line_summary"`
}

type ResultKind int

const (
	// ResultFallback is a SummaryResult computed locally.
	ResultFallback ResultKind = iota
	// ResultExternal is the model's JSON object, passed through as-is.
	ResultExternal
	// ResultRaw is model text that held no usable JSON object.
	ResultRaw
)

func (k ResultKind) String() string {
	switch k {
	case ResultFallback:
		return "fallback"
	case ResultExternal:
		return "external"
	case ResultRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// AnalysisResult is what the analyzer hands back for a batch of reviews.
// Only the fields matching Kind are populated.
type AnalysisResult struct {
	Kind    ResultKind
	Source  string
	Summary SummaryResult
	Fields  map[string]any
	Raw     string
}

func FallbackResult(summary SummaryResult) AnalysisResult {
	return AnalysisResult{Kind: ResultFallback, Source: SourceFallback, Summary: summary}
}

func ExternalResult(fields map[string]any) AnalysisResult {
	return AnalysisResult{Kind: ResultExternal, Source: SourceOpenRouter, Fields: fields}
}

func RawResult(text string) AnalysisResult {
	return AnalysisResult{Kind: ResultRaw, Source: SourceOpenRouter, Raw: text}
}

func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ResultExternal:
		out := make(map[string]any, len(r.Fields)+1)
		for k, v := range r.Fields {
			out[k] = v
		}
		out["source"] = r.Source
		return json.Marshal(out)
	case ResultRaw:
		return json.Marshal(struct {
			Source string `json:"source"`
			Raw    string `json:"raw"`
		}{r.Source, r.Raw})
	default:
		return json.Marshal(struct {
			Source string `json:"source"`
			SummaryResult
		}{r.Source, r.Summary})
	}
}
