package validator

import (
	"sort"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
)

// Fields checks an inbound field map against a schema and returns the first
// violation: missing mandatory field, then unknown field, then blank value.
func Fields(fields domain.FieldMap, schema domain.Schema) error {
	for _, name := range schema.Mandatory {
		if !fields.Has(name) {
			return domain.NewValidationError("missing required attribute `%s`", name)
		}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !schema.Permits(key) {
			return domain.NewValidationError("attribute `%s` not allowed", key)
		}
	}

	for _, name := range schema.Fields {
		if fields.IsBlank(name) {
			return domain.NewValidationError("attribute `%s` is empty", name)
		}
	}

	return nil
}
