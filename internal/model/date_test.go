package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.April, 1)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-04-01"`, string(b))

	var got Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-04-01"`), &got))
	assert.Equal(t, d, got)
}

func TestDateUnmarshalRejectsBadInput(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"01/04/2025"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20250401`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan("2024-12-31"))
	assert.Equal(t, NewDate(2024, time.December, 31), d)

	require.NoError(t, d.Scan([]byte("2023-02-03 00:00:00")))
	assert.Equal(t, NewDate(2023, time.February, 3), d)

	require.NoError(t, d.Scan(time.Date(2022, time.July, 9, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2022, time.July, 9), d)

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2025, time.January, 5).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", v)
}
