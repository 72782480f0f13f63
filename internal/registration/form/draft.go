package form

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/viper"

	"business-registration/internal/models"
)

// LoadDraft reads a saved document from a YAML or JSON file. Scalars are
// kept as text, so an unquoted `latitude: 1.35` loads as "1.35".
func LoadDraft(path string) (models.Document, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return models.Document{}, fmt.Errorf("failed to read draft %s: %w", path, err)
	}

	// viper lowercases keys; encoding/json matches field names case-insensitively.
	raw, err := json.Marshal(stringifyScalars(v.AllSettings()))
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to encode draft: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Document{}, fmt.Errorf("failed to decode draft: %w", err)
	}
	return doc, nil
}

func stringifyScalars(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[k] = stringifyScalars(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = stringifyScalars(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = stringifyScalars(item)
		}
		return out
	case nil, string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
