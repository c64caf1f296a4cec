package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateTimeUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"2025-07-01T00:00:00Z"`, "2025-07-01"},
		{`"2025-07-01T12:30:45.123456"`, "2025-07-01"}, // naive, as the backend emits
		{`"2025-07-01"`, "2025-07-01"},
	}

	for _, tc := range tests {
		var d DateTime
		require.NoError(t, json.Unmarshal([]byte(tc.in), &d), "input %s", tc.in)
		require.Equal(t, tc.want, d.Format("2006-01-02"))
	}

	var d DateTime
	require.Error(t, json.Unmarshal([]byte(`"07/01/2025"`), &d))
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	require.True(t, d.IsZero())
}
