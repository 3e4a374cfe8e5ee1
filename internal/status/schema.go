package status

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const statusSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "oneOf": [
    {
      "type": "object",
      "maxProperties": 0
    },
    {
      "type": "object",
      "required": ["kind"],
      "additionalProperties": false,
      "properties": {
        "kind": { "const": "Stopped" },
        "content": { "type": "null" }
      }
    },
    {
      "type": "object",
      "required": ["kind", "content"],
      "additionalProperties": false,
      "properties": {
        "kind": { "const": "Running" },
        "content": {
          "type": "object",
          "required": ["task", "started"],
          "properties": {
            "task": { "type": "string" },
            "started": {
              "type": "string",
              "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}$"
            }
          }
        }
      }
    }
  ]
}`

var statusSchemaLoader = gojsonschema.NewStringLoader(statusSchemaJSON)

// validateSchema checks a raw status document against the status schema.
func validateSchema(data []byte) error {
	result, err := gojsonschema.Validate(statusSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		// Not JSON at all.
		return &ParseError{Reason: "invalid JSON", Err: err}
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return &ParseError{Reason: "schema violation: " + strings.Join(issues, "; ")}
}
