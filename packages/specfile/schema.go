package specfile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// suiteSchema describes a suite file. The document root is a group
// that additionally requires a name.
const suiteSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "hookList": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "test": {
      "type": "object",
      "required": ["name", "run"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "run": {"type": "string", "minLength": 1},
        "ignore": {"type": "boolean"},
        "only": {"type": "boolean"},
        "timeoutMillis": {"type": "integer", "minimum": 1}
      }
    },
    "group": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "envFile": {"type": "string", "minLength": 1},
        "env": {
          "type": "object",
          "additionalProperties": {"type": "string"}
        },
        "beforeAll": {"$ref": "#/definitions/hookList"},
        "beforeEach": {"$ref": "#/definitions/hookList"},
        "afterEach": {"$ref": "#/definitions/hookList"},
        "afterAll": {"$ref": "#/definitions/hookList"},
        "tests": {"type": "array", "items": {"$ref": "#/definitions/test"}},
        "groups": {"type": "array", "items": {"$ref": "#/definitions/group"}}
      }
    }
  },
  "$ref": "#/definitions/group"
}`

// ValidateBytes checks raw YAML against the suite-file schema.
func ValidateBytes(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}

	// gojsonschema speaks JSON, so the parsed YAML document goes
	// through a JSON round-trip first.
	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting to json: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(suiteSchema),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if err != nil {
		return fmt.Errorf("validating schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("invalid suite file: %s", strings.Join(msgs, "; "))
}
