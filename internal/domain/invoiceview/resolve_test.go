package invoiceview

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = time.FixedZone("ICT", 7*60*60)

func decode(t *testing.T, payload string) *entity.RawInvoice {
	t.Helper()
	var inv entity.RawInvoice
	require.NoError(t, json.Unmarshal([]byte(payload), &inv))
	return &inv
}

func strPtr(s string) *string { return &s }

func TestResolvePlayTime(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "start_and_end_naive",
			payload:  `{"startTime":"2024-01-01T09:00:00","endTime":"2024-01-01T10:30:00"}`,
			expected: "9:00 → 10:30 (90 phút)",
		},
		{
			name:     "start_and_end_utc_shown_in_store_zone",
			payload:  `{"startTime":"2024-01-01T02:05:00.000Z","endTime":"2024-01-01T03:00:00.000Z"}`,
			expected: "9:05 → 10:00 (55 phút)",
		},
		{
			name:     "half_minute_rounds_up",
			payload:  `{"startTime":"2024-01-01T09:00:00","endTime":"2024-01-01T10:29:30"}`,
			expected: "9:00 → 10:29 (90 phút)",
		},
		{
			name:     "epoch_milliseconds",
			payload:  `{"startTime":1704074400000,"endTime":1704078000000}`,
			expected: "9:00 → 10:00 (60 phút)",
		},
		{
			name:     "end_before_start_is_not_clamped",
			payload:  `{"startTime":"2024-01-01T10:30:00","endTime":"2024-01-01T09:00:00"}`,
			expected: "10:30 → 9:00 (-90 phút)",
		},
		{
			name:     "play_item_minutes",
			payload:  `{"items":[{"type":"play","minutes":45}]}`,
			expected: "0h45m (45 phút)",
		},
		{
			name:     "play_item_over_an_hour",
			payload:  `{"items":[{"type":"product","minutes":10},{"type":"play","minutes":135}]}`,
			expected: "2h15m (135 phút)",
		},
		{
			name:     "play_item_without_minutes",
			payload:  `{"items":[{"type":"play","amount":40000}]}`,
			expected: "0h0m (0 phút)",
		},
		{
			name:     "only_start_falls_back_to_item",
			payload:  `{"startTime":"2024-01-01T09:00:00","items":[{"type":"play","minutes":61}]}`,
			expected: "1h1m (61 phút)",
		},
		{
			name:     "nan_minutes_count_as_missing",
			payload:  `{"items":[{"type":"play","minutes":"NaN"}]}`,
			expected: "0h0m (0 phút)",
		},
		{
			name:     "infinite_minutes_count_as_missing",
			payload:  `{"items":[{"type":"play","minutes":"Inf"}]}`,
			expected: "0h0m (0 phút)",
		},
		{
			name:     "negative_infinity_minutes_count_as_missing",
			payload:  `{"items":[{"type":"play","minutes":"-Infinity"}]}`,
			expected: "0h0m (0 phút)",
		},
		{
			name:     "unparseable_timestamps_are_absent",
			payload:  `{"startTime":"hôm nay","endTime":"2024-01-01T09:00:00"}`,
			expected: NoDataMarker,
		},
		{
			name:     "no_data",
			payload:  `{"items":[{"type":"product","name":"Sting"}]}`,
			expected: NoDataMarker,
		},
		{
			name:     "empty_payload",
			payload:  `{}`,
			expected: NoDataMarker,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolvePlayTime(decode(t, tc.payload), ict))
		})
	}

	assert.Equal(t, NoDataMarker, ResolvePlayTime(nil, ict))
}

func TestResolvePlayTime_ElapsedMinutesProperty(t *testing.T) {
	start := time.Date(2024, 3, 15, 18, 0, 0, 0, ict)
	for seconds := 0; seconds <= 6*60*60; seconds += 97 {
		end := start.Add(time.Duration(seconds) * time.Second)
		inv := &entity.RawInvoice{
			StartTime: tsPtr(entity.NewTimestamp(start)),
			EndTime:   tsPtr(entity.NewTimestamp(end)),
		}
		minutes := int(math.Floor(float64(seconds)/60 + 0.5))
		assert.Contains(t, ResolvePlayTime(inv, ict), fmt.Sprintf("(%d phút)", minutes))
	}
}

func TestResolvePlayTime_ItemMinutesProperty(t *testing.T) {
	for m := 0; m <= 600; m += 7 {
		minutes := float64(m)
		inv := &entity.RawInvoice{Items: []entity.LineItem{{Type: entity.LineItemTypePlay, Minutes: &minutes}}}
		expected := fmt.Sprintf("%dh%dm (%d phút)", m/60, m%60, m)
		assert.Equal(t, expected, ResolvePlayTime(inv, ict))
	}
}

func tsPtr(ts entity.Timestamp) *entity.Timestamp { return &ts }

func TestResolveItemName(t *testing.T) {
	testCases := []struct {
		name     string
		item     entity.LineItem
		expected string
	}{
		{
			name:     "snapshot_wins",
			item:     entity.LineItem{NameSnapshot: strPtr("Sting dâu"), Name: strPtr("Sting"), Product: &entity.ProductRef{Name: strPtr("Nước tăng lực")}},
			expected: "Sting dâu",
		},
		{
			name:     "name_when_snapshot_empty",
			item:     entity.LineItem{NameSnapshot: strPtr(""), Name: strPtr("Sting")},
			expected: "Sting",
		},
		{
			name:     "product_name",
			item:     entity.LineItem{Type: "product", Product: &entity.ProductRef{Name: strPtr("Mì xào bò")}},
			expected: "Mì xào bò",
		},
		{
			name:     "play_label",
			item:     entity.LineItem{Type: "play"},
			expected: PlayChargeLabel,
		},
		{
			name:     "play_with_name_uses_name",
			item:     entity.LineItem{Type: "play", Name: strPtr("Giờ chơi VIP")},
			expected: "Giờ chơi VIP",
		},
		{
			name:     "unknown",
			item:     entity.LineItem{Type: "product", Product: &entity.ProductRef{}},
			expected: UnknownMarker,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveItemName(tc.item))
		})
	}
}

func TestResolveStaffName(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected string
	}{
		{name: "plain_string", payload: `{"staff":"Alice"}`, expected: "Alice"},
		{name: "object_name", payload: `{"staff":{"name":"Bob"}}`, expected: "Bob"},
		{name: "object_username", payload: `{"staff":{"username":"carol01"}}`, expected: "carol01"},
		{name: "object_empty_name_uses_username", payload: `{"staff":{"name":"","username":"dan"}}`, expected: "dan"},
		{name: "object_without_names", payload: `{"staff":{"_id":"u1"}}`, expected: UnknownMarker},
		{name: "null", payload: `{"staff":null}`, expected: UnknownMarker},
		{name: "absent", payload: `{}`, expected: UnknownMarker},
		{name: "empty_string", payload: `{"staff":""}`, expected: UnknownMarker},
		{name: "number", payload: `{"staff":42}`, expected: UnknownMarker},
		{name: "wrong_shape", payload: `{"staff":true}`, expected: UnknownMarker},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveStaffName(decode(t, tc.payload).Staff))
		})
	}
}

func TestResolveTableName(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected string
	}{
		{name: "nested_table", payload: `{"table":{"name":"Bàn 5"},"tableName":"Bàn cũ"}`, expected: "Bàn 5"},
		{name: "flat_table_name", payload: `{"table":"65a1b2","tableName":"Bàn 7"}`, expected: "Bàn 7"},
		{name: "nested_without_name", payload: `{"table":{"_id":"t1"},"tableName":"Bàn 2"}`, expected: "Bàn 2"},
		{name: "unknown", payload: `{"table":"65a1b2"}`, expected: UnknownMarker},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveTableName(decode(t, tc.payload)))
		})
	}

	assert.Equal(t, UnknownMarker, ResolveTableName(nil))
}

func TestTotalDiscount(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected int64
	}{
		{name: "two_discounts", payload: `{"discounts":[{"amount":1000},{"amount":500}]}`, expected: 1500},
		{name: "absent", payload: `{}`, expected: 0},
		{name: "empty_list", payload: `{"discounts":[]}`, expected: 0},
		{name: "missing_amount_counts_zero", payload: `{"discounts":[{"reason":"khách quen"},{"amount":2000}]}`, expected: 2000},
		{name: "not_a_list", payload: `{"discounts":{"amount":1000}}`, expected: 0},
		{name: "non_object_entries_skipped", payload: `{"discounts":[null,5,{"amount":"3000"}]}`, expected: 3000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalDiscount(decode(t, tc.payload))
			assert.True(t, decimal.NewFromInt(tc.expected).Equal(got), "got %s", got)
		})
	}

	assert.True(t, TotalDiscount(nil).IsZero())
}

func TestPartitionLineItems(t *testing.T) {
	inv := decode(t, `{"items":[
		{"type":"product","name":"A"},
		{"type":"play","minutes":30,"amount":20000},
		{"type":"service","name":"Phí bàn"},
		{"type":"product","name":"B"},
		{"type":"play","minutes":10},
		{"type":"product","name":"C"}
	]}`)

	products, play := PartitionLineItems(inv)
	require.Len(t, products, 3)
	assert.Equal(t, "A", *products[0].Name)
	assert.Equal(t, "B", *products[1].Name)
	assert.Equal(t, "C", *products[2].Name)
	require.NotNil(t, play)
	assert.Equal(t, 30.0, *play.Minutes)

	products, play = PartitionLineItems(decode(t, `{"items":"not-a-list"}`))
	assert.Empty(t, products)
	assert.Nil(t, play)
}

func TestResolvePlayAmount(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected int64
	}{
		{name: "item_amount_wins", payload: `{"playAmount":50000,"items":[{"type":"play","amount":60000}]}`, expected: 60000},
		{name: "zero_item_amount_falls_back", payload: `{"playAmount":50000,"items":[{"type":"play","amount":0}]}`, expected: 50000},
		{name: "top_level_only", payload: `{"playAmount":50000}`, expected: 50000},
		{name: "neither", payload: `{"items":[{"type":"play"}]}`, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolvePlayAmount(decode(t, tc.payload))
			assert.True(t, decimal.NewFromInt(tc.expected).Equal(got), "got %s", got)
		})
	}
}
