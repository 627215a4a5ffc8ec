package models

import (
	"bytes"
	"encoding/json"
	"math"
	"time"
)

// timestampLayouts are the pre-formatted date layouts accepted from the
// gateway, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Timestamp is a gateway date. The JSON token type decides the encoding: a
// number is Unix seconds, a string is a formatted date. Strings that match
// no known layout are kept in Raw with a zero Time.
type Timestamp struct {
	time.Time
	Raw string
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = parseTimestamp(s)
		return nil
	}

	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return err
	}
	whole, frac := math.Modf(secs)
	t.Time = time.Unix(int64(whole), int64(frac*1e9)).UTC()
	t.Raw = ""
	return nil
}

// MarshalJSON encodes the timestamp as Unix seconds, or as the raw string
// when it could not be parsed.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		if t.Raw != "" {
			return json.Marshal(t.Raw)
		}
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Unix())
}

func parseTimestamp(s string) Timestamp {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: parsed}
		}
	}
	return Timestamp{Raw: s}
}
