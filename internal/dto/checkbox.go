package dto

import (
	"encoding/json"
	"strings"
)

// Checkbox is an HTML checkbox value: checked when the raw value is "on" or
// JSON true, unchecked for anything else including absence.
type Checkbox bool

func (c *Checkbox) UnmarshalText(text []byte) error {
	*c = Checkbox(string(text) == "on")
	return nil
}

func (c *Checkbox) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*c = Checkbox(v)
	case string:
		*c = Checkbox(strings.TrimSpace(v) == "on")
	default:
		*c = false
	}
	return nil
}

func (c Checkbox) Bool() bool {
	return bool(c)
}
