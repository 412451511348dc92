// Package api defines the messages of the havana.v1.InvestorService RPC API
// and the JSON codec they travel with.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CodecName is the Connect codec name, served as application/json.
const CodecName = "json"

// Codec marshals API messages with encoding/json.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Number is a user-entered amount. It decodes from a JSON string or number
// and keeps the text as entered; the ledger validates it.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return fmt.Errorf("invalid number %s", data)
		}
		*n = Number(data)
	}
	return nil
}
