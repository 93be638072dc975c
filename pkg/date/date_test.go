// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package date_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/pkg/date"
)

/*
TestParse accepts only the canonical layout.
*/
func TestParse(t *testing.T) {
	d, err := date.Parse("1892-01-03")
	require.NoError(t, err)
	assert.Equal(t, date.Date{Year: 1892, Month: time.January, Day: 3}, d)
	assert.Equal(t, "1892-01-03", d.String())

	_, err = date.Parse("03/01/1892")
	assert.Error(t, err)
}

/*
TestScan covers the forms drivers hand back for DATE columns.
*/
func TestScan(t *testing.T) {
	want := date.New(2024, time.May, 1)

	tests := []struct {
		name string
		src  any
	}{
		{"time_utc", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{"plain_text", "2024-05-01"},
		{"rfc3339", "2024-05-01T00:00:00Z"},
		{"sqlite_datetime", "2024-05-01 00:00:00"},
		{"bytes", []byte("2024-05-01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got date.Date
			require.NoError(t, got.Scan(tt.src))
			assert.Equal(t, want, got)
		})
	}

	var bad date.Date
	assert.Error(t, bad.Scan(42))
}

/*
TestJSON verifies the string encoding, including null for absent dates.
*/
func TestJSON(t *testing.T) {
	type payload struct {
		DueBack *date.Date `json:"due_back"`
	}

	due := date.New(2024, time.June, 30)
	encoded, err := json.Marshal(payload{DueBack: &due})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due_back":"2024-06-30"}`, string(encoded))

	encoded, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due_back":null}`, string(encoded))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"due_back":"2024-07-01"}`), &decoded))
	require.NotNil(t, decoded.DueBack)
	assert.Equal(t, date.New(2024, time.July, 1), *decoded.DueBack)

	assert.Error(t, json.Unmarshal([]byte(`{"due_back":"tomorrow"}`), &decoded))
}

/*
TestCompare checks ordering helpers and rollover.
*/
func TestCompare(t *testing.T) {
	d := date.New(2024, time.February, 28)

	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.False(t, d.Before(d))
	assert.Equal(t, date.New(2024, time.February, 29), d.AddDays(1))
	assert.Equal(t, date.New(2024, time.March, 1), date.New(2024, time.February, 30))
	assert.True(t, date.Date{}.IsZero())
}
