package futureforged

import "encoding/json"

const roadmapSchemaName = "roadmap"

// RoadmapSchema returns the JSON schema providers are asked to conform to.
// Each call returns a fresh document, so callers may mutate it.
func RoadmapSchema() JSONSchema {
	stringProp := func(description string) map[string]any {
		prop := map[string]any{"type": "string"}
		if description != "" {
			prop["description"] = description
		}
		return prop
	}

	resource := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": stringProp("Name of the resource website or video"),
			"url":   stringProp("Direct URL to the resource"),
		},
		"required":             []string{"title", "url"},
		"additionalProperties": false,
	}

	step := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       stringProp(""),
			"description": stringProp(""),
			"duration":    stringProp("Estimated time to complete this step"),
			"resources": map[string]any{
				"type":  "array",
				"items": resource,
			},
		},
		"required":             []string{"title", "description", "duration", "resources"},
		"additionalProperties": false,
	}

	day := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"day": stringProp(""),
			"tasks": map[string]any{
				"type":  "array",
				"items": stringProp(""),
			},
		},
		"required":             []string{"day", "tasks"},
		"additionalProperties": false,
	}

	return JSONSchema{
		"title": "Roadmap",
		"type":  "object",
		"properties": map[string]any{
			"motivationalQuote": stringProp("A personalized motivational quote including the user's name."),
			"steps": map[string]any{
				"type":        "array",
				"description": "A list of roadmap phases or steps.",
				"items":       step,
			},
			"weeklySchedule": map[string]any{
				"type":  "array",
				"items": day,
			},
			"securityNote": stringProp("A message assuring the user about their data privacy and safe learning habits."),
		},
		"required":             []string{"motivationalQuote", "steps", "weeklySchedule", "securityNote"},
		"additionalProperties": false,
	}
}

// RoadmapSchemaJSON returns RoadmapSchema as indented JSON.
func RoadmapSchemaJSON() ([]byte, error) {
	return json.MarshalIndent(RoadmapSchema(), "", "  ")
}
