package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("invalid id")

// FlexibleID accepts an identifier sent either as a JSON number or a JSON string.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

func (id FlexibleID) MarshalJSON() ([]byte, error) {
	if n, err := id.Uint(); err == nil {
		return []byte(strconv.FormatUint(uint64(n), 10)), nil
	}
	return json.Marshal(string(id))
}

func (id FlexibleID) IsEmpty() bool {
	return id == ""
}

// Uint parses the id as a positive database key.
func (id FlexibleID) Uint() (uint, error) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, string(id))
	}
	return uint(n), nil
}
