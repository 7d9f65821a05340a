package catalog

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// LocalizedText maps a language code to text. A plain string in the source
// data is accepted as English.
type LocalizedText map[string]string

// UnmarshalJSON accepts either an object of language → text or a string.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = plainText(s)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("localized text: %w", err)
	}
	*t = m
	return nil
}

// UnmarshalYAML accepts either a mapping of language → text or a scalar.
func (t *LocalizedText) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = plainText(value.Value)
		return nil
	}
	var m map[string]string
	if err := value.Decode(&m); err != nil {
		return fmt.Errorf("localized text: %w", err)
	}
	*t = m
	return nil
}

func plainText(s string) LocalizedText {
	if s == "" {
		return nil
	}
	return LocalizedText{"en": s}
}
