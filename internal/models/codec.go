package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Older clients persisted numbers and booleans as their string forms
// ("75", "true"). FlexInt and FlexBool accept either representation at
// the request boundary and reject everything else.

type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return fmt.Errorf("invalid integer value null")
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("invalid integer value %q", str)
		}
		*f = FlexInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid integer value %s", s)
	}
	*f = FlexInt(n)
	return nil
}

type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch s {
	case "true":
		*f = true
		return nil
	case "false":
		*f = false
		return nil
	case `"true"`:
		*f = true
		return nil
	case `"false"`:
		*f = false
		return nil
	}
	return fmt.Errorf("invalid boolean value %s", s)
}
