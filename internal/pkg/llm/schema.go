package llm

// Schema declares the JSON shape a structured call must produce.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Object builds a JSON-schema object. Every property not listed in required is optional.
func Object(properties map[string]any, required ...string) map[string]any {
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// String is a string property.
func String(description string) map[string]any {
	return withDescription(map[string]any{"type": "string"}, description)
}

// Number is a numeric property.
func Number(description string) map[string]any {
	return withDescription(map[string]any{"type": "number"}, description)
}

// Array is a list property.
func Array(items map[string]any, description string) map[string]any {
	return withDescription(map[string]any{"type": "array", "items": items}, description)
}

// Enum is a string property restricted to values.
func Enum(description string, values ...string) map[string]any {
	return withDescription(map[string]any{"type": "string", "enum": values}, description)
}

func withDescription(m map[string]any, description string) map[string]any {
	if description != "" {
		m["description"] = description
	}
	return m
}
