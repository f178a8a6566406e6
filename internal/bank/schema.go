package bank

// bankSchema is the JSON Schema a question bank document must satisfy
// before it is decoded.
var bankSchema = map[string]any{
	"type":     "object",
	"required": []any{"topics"},
	"properties": map[string]any{
		"topics": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name", "questions"},
				"properties": map[string]any{
					"name": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"prompt", "options", "correct_index"},
							"properties": map[string]any{
								"prompt": map[string]any{
									"type":      "string",
									"minLength": 1,
								},
								"options": map[string]any{
									"type":     "array",
									"minItems": OptionCount,
									"maxItems": OptionCount,
									"items":    map[string]any{"type": "string"},
								},
								"correct_index": map[string]any{
									"type":    "integer",
									"minimum": 0,
									"maximum": OptionCount - 1,
								},
							},
						},
					},
				},
			},
		},
	},
}
