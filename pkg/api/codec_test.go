package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberDecodes(t *testing.T) {
	tests := []struct {
		in   string
		want Number
	}{
		{`{"amount":"1000"}`, "1000"},
		{`{"amount":12.5}`, "12.5"},
		{`{"amount":null}`, ""},
		{`{}`, ""},
		{`{"amount":"abc"}`, "abc"},
	}
	for _, tt := range tests {
		var req AddInvestorRequest
		require.NoError(t, json.Unmarshal([]byte(tt.in), &req), tt.in)
		assert.Equal(t, tt.want, req.Amount, tt.in)
	}

	var req AddInvestorRequest
	assert.Error(t, json.Unmarshal([]byte(`{"amount":true}`), &req))
}

func TestCodecEmptyBody(t *testing.T) {
	var req GetDashboardRequest
	assert.NoError(t, Codec{}.Unmarshal(nil, &req))
	assert.Equal(t, "json", Codec{}.Name())
}
