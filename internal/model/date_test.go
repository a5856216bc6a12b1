package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(1990, time.June, 30)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-06-30"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"1985-12-29"`), &parsed))
	assert.Equal(t, "1985-12-29", parsed.Format("2006-01-02"))
}

func TestDateJSONNull(t *testing.T) {
	var d Date

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}

func TestDateJSONRejectsBadFormat(t *testing.T) {
	var d Date

	assert.Error(t, json.Unmarshal([]byte(`"30/06/1990"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"1990-06-30T00:00:00Z"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(1990, time.June, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1990-06-30", d.Format("2006-01-02"))

	require.NoError(t, d.Scan("1985-12-29"))
	assert.Equal(t, "1985-12-29", d.Format("2006-01-02"))

	require.NoError(t, d.Scan([]byte("2000-02-29")))
	assert.Equal(t, "2000-02-29", d.Format("2006-01-02"))

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
