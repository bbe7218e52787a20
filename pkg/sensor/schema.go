package sensor

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// registrationSchema constrains manual registration payloads: a USN is
// required, endpoint fields must be hex-encoded (8 digits for the IPv4,
// any length for the port), and the network id is the composite
// "hexip:hexport" fallback form.
const registrationSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"usn":         {"type": "string", "minLength": 1},
		"name":        {"type": "string"},
		"device_type": {"type": "string"},
		"mac":         {"type": "string"},
		"hex_ip":      {"type": "string", "pattern": "^[0-9A-Fa-f]{8}$"},
		"hex_port":    {"type": "string", "pattern": "^[0-9A-Fa-f]+$"},
		"ssdp_path":   {"type": "string", "pattern": "^/"},
		"network_id":  {"type": "string", "pattern": "^[0-9A-Fa-f]{8}:[0-9A-Fa-f]+$"}
	},
	"required": ["usn"],
	"additionalProperties": false
}`

var (
	regSchemaOnce sync.Once
	regSchema     *jsonschema.Schema
	regSchemaErr  error
)

func compiledRegistrationSchema() (*jsonschema.Schema, error) {
	regSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(registrationSchema), &doc); err != nil {
			regSchemaErr = fmt.Errorf("failed to unmarshal registration schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("registration.json", doc); err != nil {
			regSchemaErr = fmt.Errorf("failed to add resource: %w", err)
			return
		}
		regSchema, regSchemaErr = c.Compile("registration.json")
	})
	return regSchema, regSchemaErr
}

// ValidateRegistration validates a decoded registration payload against
// the registration schema. Returns an error wrapping ErrValidation when
// the payload does not conform.
func ValidateRegistration(payload map[string]any) error {
	compiled, err := compiledRegistrationSchema()
	if err != nil {
		return err
	}
	if err := compiled.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
