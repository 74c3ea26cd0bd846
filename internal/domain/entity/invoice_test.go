package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawInvoice_UnmarshalJSON(t *testing.T) {
	payload := `{
		"_id": "65f0",
		"code": 1024,
		"table": "t-7",
		"tableName": "Bàn 7",
		"subTotal": "125000",
		"total": 120000.5,
		"surcharge": "n/a",
		"discounts": "none",
		"items": [{"type":"play","minutes":"45"}, 12, {"type":"product","product":{"id":"p1","name":"Sting"}}],
		"paid": "yes",
		"staff": {"_id":"u1","name":"Lan"},
		"createdAt": 1704074400000,
		"updatedAt": "2024-01-01T02:00:00+07:00"
	}`

	var inv RawInvoice
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))

	require.NotNil(t, inv.ID)
	assert.Equal(t, "65f0", *inv.ID)
	require.NotNil(t, inv.Code)
	assert.Equal(t, "1024", *inv.Code)

	require.NotNil(t, inv.Table)
	assert.Equal(t, "t-7", *inv.Table.ID)
	assert.Nil(t, inv.Table.Name)
	assert.Equal(t, "Bàn 7", *inv.TableName)

	assert.Equal(t, "125000", inv.SubTotal.String())
	assert.Equal(t, "120000.5", inv.Total.String())
	assert.Nil(t, inv.Surcharge)
	assert.Nil(t, inv.Discounts)

	require.Len(t, inv.Items, 2)
	assert.True(t, inv.Items[0].IsPlay())
	assert.Equal(t, 45.0, *inv.Items[0].Minutes)
	assert.True(t, inv.Items[1].IsProduct())
	assert.Equal(t, "p1", *inv.Items[1].Product.ID)
	assert.Equal(t, "Sting", *inv.Items[1].Product.Name)

	assert.Nil(t, inv.Paid)

	assert.Equal(t, StaffDetailed, inv.Staff.Kind)
	assert.Equal(t, "Lan", *inv.Staff.Name)
	assert.Equal(t, "u1", *inv.Staff.ID)

	require.NotNil(t, inv.CreatedAt)
	assert.True(t, inv.CreatedAt.In(time.UTC).Equal(time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)))
	require.NotNil(t, inv.UpdatedAt)
	assert.True(t, inv.UpdatedAt.In(time.UTC).Equal(time.Date(2023, 12, 31, 19, 0, 0, 0, time.UTC)))
}

func TestRawInvoice_IDFallsBackToUnderscoreID(t *testing.T) {
	var inv RawInvoice
	require.NoError(t, json.Unmarshal([]byte(`{"id":"","_id":"abc"}`), &inv))
	assert.Equal(t, "abc", *inv.ID)
}

func TestRawInvoice_StaffNumberIsNotAName(t *testing.T) {
	var inv RawInvoice
	require.NoError(t, json.Unmarshal([]byte(`{"staff":42}`), &inv))
	assert.Equal(t, StaffNone, inv.Staff.Kind)
	assert.Empty(t, inv.Staff.Plain)
}

func TestParseTimestamp(t *testing.T) {
	ict := time.FixedZone("ICT", 7*60*60)

	testCases := []struct {
		name     string
		raw      string
		ok       bool
		expected time.Time
	}{
		{name: "rfc3339_utc", raw: `"2024-01-01T02:00:00Z"`, ok: true, expected: time.Date(2024, 1, 1, 9, 0, 0, 0, ict)},
		{name: "rfc3339_millis", raw: `"2024-01-01T02:00:00.123Z"`, ok: true, expected: time.Date(2024, 1, 1, 9, 0, 0, 123000000, ict)},
		{name: "naive_read_in_location", raw: `"2024-01-01T09:00:00"`, ok: true, expected: time.Date(2024, 1, 1, 9, 0, 0, 0, ict)},
		{name: "naive_with_space", raw: `"2024-01-01 09:00:00"`, ok: true, expected: time.Date(2024, 1, 1, 9, 0, 0, 0, ict)},
		{name: "date_only_is_utc", raw: `"2024-01-01"`, ok: true, expected: time.Date(2024, 1, 1, 7, 0, 0, 0, ict)},
		{name: "epoch_millis", raw: `1704074400000`, ok: true, expected: time.Date(2024, 1, 1, 9, 0, 0, 0, ict)},
		{name: "garbage", raw: `"hôm qua"`, ok: false},
		{name: "empty_string", raw: `""`, ok: false},
		{name: "null", raw: `null`, ok: false},
		{name: "bool", raw: `true`, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts, ok := ParseTimestamp(json.RawMessage(tc.raw))
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, tc.expected.Equal(ts.In(ict)), "got %s", ts.In(ict))
			}
		})
	}
}

func TestNewWallClock(t *testing.T) {
	ict := time.FixedZone("ICT", 7*60*60)
	ts := NewWallClock(2024, time.March, 2, 21, 15, 0)
	assert.Equal(t, "21:15", ts.In(ict).Format("15:04"))
	assert.Equal(t, "21:15", ts.In(time.UTC).Format("15:04"))
}
