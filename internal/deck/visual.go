package deck

import (
	"encoding/json"
	"strings"
)

// ParseVisualData interprets a collaborator reply as chart or table data.
// Valid JSON passes through untouched; anything else is re-encoded as a
// JSON string, so the result is always embeddable in a response body.
func ParseVisualData(text string) json.RawMessage {
	s := strings.TrimSpace(text)
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	quoted, _ := json.Marshal(s)
	return quoted
}
