package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is an opaque identifier assigned by the Remote Event Service.
type ID string

// ParseID coerces a raw flag or selector value into an ID.
func ParseID(raw string) (ID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty identifier")
	}
	return ID(s), nil
}

// ParseIDs coerces every raw value, failing on the first invalid one.
func ParseIDs(raw []string) ([]ID, error) {
	ids := make([]ID, 0, len(raw))
	for _, r := range raw {
		id, err := ParseID(r)
		if err != nil {
			return nil, fmt.Errorf("parsing identifier %q: %w", r, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// String returns the identifier text
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// isNumeric reports whether the ID is a canonical decimal integer, the only
// form encoded as a JSON number. "007" and "+5" stay strings.
func (id ID) isNumeric() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// MarshalJSON encodes canonical integer IDs as numbers and everything else as
// strings. Decoding either form yields the same text, so identity survives a
// round trip.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts JSON numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding identifier: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding identifier: %w", err)
	}
	*id = ID(n.String())
	return nil
}
