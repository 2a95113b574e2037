package utils

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

const messageContentPath = "choices.0.message.content"

// ExtractJSONObject recovers a JSON object embedded in noisy model output, such as
// prose or markdown fences. It parses the widest span between the first '{' and
// the last '}'. Failure to find or parse one is reported as false, never as an error.
func ExtractJSONObject(text string) (map[string]any, bool) {
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first < 0 || last < first {
		return nil, false
	}

	candidate := text[first : last+1]
	if !gjson.Valid(candidate) {
		slog.Debug("[JSONExtract] Candidate span is not valid JSON",
			slog.Int("start", first),
			slog.Int("end", last))
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		slog.Debug("[JSONExtract] Failed to decode candidate span",
			slog.String("error", err.Error()))
		return nil, false
	}
	return out, true
}

// MessageContent unwraps choices[0].message.content from a raw chat-completion
// envelope. A null content unwraps to "".
func MessageContent(envelope string) (string, bool) {
	if !gjson.Valid(envelope) {
		return "", false
	}
	content := gjson.Get(envelope, messageContentPath)
	if !content.Exists() {
		return "", false
	}
	return content.String(), true
}

func DeserializeFromJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("[JSONUtils] Failed to deserialize JSON",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
