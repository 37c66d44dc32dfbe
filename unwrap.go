package futureforged

import (
	"encoding/json"
	"strings"
)

const codeFence = "```"

// UnwrapJSON trims surrounding whitespace and strips a single Markdown code
// fence (with or without an info string such as "json"). Text that is not
// fenced is only trimmed, so UnwrapJSON(UnwrapJSON(s)) == UnwrapJSON(s).
func UnwrapJSON(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, codeFence) {
		return s
	}

	body := strings.TrimPrefix(s, codeFence)
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		// Single-line fence: drop an info string glued to the opening marker.
		body = strings.TrimLeft(body, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}

	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, codeFence)
	return strings.TrimSpace(body)
}

// ParseRoadmap unwraps, decodes and validates a provider payload.
// Every failure is a MalformedResponseError; the reason tells empty, parse and
// schema failures apart.
func ParseRoadmap(text string) (*Roadmap, error) {
	payload := UnwrapJSON(text)
	if payload == "" {
		return nil, NewMalformedResponseError(ReasonEmpty, nil)
	}

	var roadmap Roadmap
	if err := json.Unmarshal([]byte(payload), &roadmap); err != nil {
		return nil, NewMalformedResponseError(ReasonParse, err)
	}

	if err := roadmap.Validate(); err != nil {
		return nil, NewMalformedResponseError(ReasonSchema, err)
	}

	roadmap.normalize()
	return &roadmap, nil
}
