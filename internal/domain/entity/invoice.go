package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Line item types used by the POS API.
const (
	LineItemTypePlay    = "play"
	LineItemTypeProduct = "product"
)

// RawInvoice is a bill as returned by the POS API. Every field is optional:
// nil means the key was missing, null, or not of a usable shape.
type RawInvoice struct {
	ID            *string
	Code          *string
	Table         *TableRef
	TableName     *string
	SubTotal      *decimal.Decimal
	Surcharge     *decimal.Decimal
	ServiceAmount *decimal.Decimal
	PlayAmount    *decimal.Decimal
	Total         *decimal.Decimal
	Discounts     []Discount
	Items         []LineItem
	Paid          *bool
	PaymentMethod *string
	PaidAt        *Timestamp
	Staff         StaffRef
	Note          *string
	StartTime     *Timestamp
	EndTime       *Timestamp
	CreatedAt     *Timestamp
	UpdatedAt     *Timestamp
}

// LineItem is one billable entry on a bill, either play time or a product.
type LineItem struct {
	Type          string
	Minutes       *float64
	Amount        *decimal.Decimal
	NameSnapshot  *string
	Name          *string
	Product       *ProductRef
	Qty           *float64
	Quantity      *float64
	PriceSnapshot *decimal.Decimal
	RatePerHour   *decimal.Decimal
	Note          *string
}

// IsPlay reports whether the item is the play-time charge.
func (i LineItem) IsPlay() bool { return i.Type == LineItemTypePlay }

// IsProduct reports whether the item is a purchased product.
func (i LineItem) IsProduct() bool { return i.Type == LineItemTypeProduct }

// Discount is a deduction applied to a bill.
type Discount struct {
	Amount *decimal.Decimal
	Reason *string
}

// TableRef points at the billiards table a bill belongs to.
// The API sends either a populated object or a bare id.
type TableRef struct {
	ID   *string
	Name *string
}

// ProductRef is the populated product of a line item.
type ProductRef struct {
	ID   *string
	Name *string
}

// StaffKind discriminates the shapes a staff reference can take.
type StaffKind int

const (
	StaffNone StaffKind = iota
	StaffPlainName
	StaffDetailed
)

// StaffRef is the cashier who handled a bill: nothing, a display string,
// or a user object with name/username.
type StaffRef struct {
	Kind     StaffKind
	Plain    string
	ID       *string
	Name     *string
	Username *string
}

// PlainStaff builds a StaffRef from a display string.
func PlainStaff(name string) StaffRef {
	if name == "" {
		return StaffRef{}
	}
	return StaffRef{Kind: StaffPlainName, Plain: name}
}

// DetailedStaff builds a StaffRef from a user object.
func DetailedStaff(name, username *string) StaffRef {
	return StaffRef{Kind: StaffDetailed, Name: name, Username: username}
}

// Timestamp is an instant decoded from the API. Strings without an offset
// ("2024-01-01T09:00:00") are wall-clock times read in the display location.
type Timestamp struct {
	t     time.Time
	naive bool
}

// NewTimestamp wraps an absolute instant.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t}
}

// NewWallClock wraps a wall-clock time that has no zone of its own.
func NewWallClock(year int, month time.Month, day, hour, min, sec int) Timestamp {
	return Timestamp{t: time.Date(year, month, day, hour, min, sec, 0, time.UTC), naive: true}
}

// In resolves the timestamp in loc.
func (ts Timestamp) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if ts.naive {
		return time.Date(ts.t.Year(), ts.t.Month(), ts.t.Day(),
			ts.t.Hour(), ts.t.Minute(), ts.t.Second(), ts.t.Nanosecond(), loc)
	}
	return ts.t.In(loc)
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTimestamp accepts ISO-8601 strings with or without offset, date-only
// strings (UTC) and epoch milliseconds. It reports false for anything else.
func ParseTimestamp(raw json.RawMessage) (Timestamp, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Timestamp{}, false
	}

	if raw[0] != '"' {
		ms, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return Timestamp{}, false
		}
		return NewTimestamp(time.UnixMilli(int64(ms))), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Timestamp{}, false
	}
	return parseTimestampString(strings.TrimSpace(s))
}

func parseTimestampString(s string) (Timestamp, bool) {
	if s == "" {
		return Timestamp{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t: t, naive: true}, true
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return NewTimestamp(t), true
	}
	return Timestamp{}, false
}

// UnmarshalJSON decodes a bill leniently. Fields of the wrong shape are
// dropped instead of failing the whole payload.
func (r *RawInvoice) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object: every field is absent.
		*r = RawInvoice{}
		return nil
	}

	inv := RawInvoice{
		ID:            firstString(fields, "id", "_id"),
		Code:          stringField(fields["code"]),
		TableName:     stringField(fields["tableName"]),
		SubTotal:      decimalField(fields["subTotal"]),
		Surcharge:     decimalField(fields["surcharge"]),
		ServiceAmount: decimalField(fields["serviceAmount"]),
		PlayAmount:    decimalField(fields["playAmount"]),
		Total:         decimalField(fields["total"]),
		Paid:          boolField(fields["paid"]),
		PaymentMethod: stringField(fields["paymentMethod"]),
		PaidAt:        timestampField(fields["paidAt"]),
		Staff:         decodeStaff(fields["staff"]),
		Note:          stringField(fields["note"]),
		StartTime:     timestampField(fields["startTime"]),
		EndTime:       timestampField(fields["endTime"]),
		CreatedAt:     timestampField(fields["createdAt"]),
		UpdatedAt:     timestampField(fields["updatedAt"]),
	}
	inv.Table = decodeTable(fields["table"])

	if list, ok := objectList(fields["discounts"]); ok {
		inv.Discounts = make([]Discount, 0, len(list))
		for _, d := range list {
			inv.Discounts = append(inv.Discounts, Discount{
				Amount: decimalField(d["amount"]),
				Reason: stringField(d["reason"]),
			})
		}
	}

	if list, ok := objectList(fields["items"]); ok {
		inv.Items = make([]LineItem, 0, len(list))
		for _, it := range list {
			inv.Items = append(inv.Items, decodeLineItem(it))
		}
	}

	*r = inv
	return nil
}

func decodeLineItem(f map[string]json.RawMessage) LineItem {
	item := LineItem{
		Minutes:       numberField(f["minutes"]),
		Amount:        decimalField(f["amount"]),
		NameSnapshot:  stringField(f["nameSnapshot"]),
		Name:          stringField(f["name"]),
		Qty:           numberField(f["qty"]),
		Quantity:      numberField(f["quantity"]),
		PriceSnapshot: decimalField(f["priceSnapshot"]),
		RatePerHour:   decimalField(f["ratePerHour"]),
		Note:          stringField(f["note"]),
	}
	if t := stringField(f["type"]); t != nil {
		item.Type = *t
	}
	if obj, ok := object(f["product"]); ok {
		item.Product = &ProductRef{
			ID:   firstString(obj, "id", "_id"),
			Name: stringField(obj["name"]),
		}
	}
	return item
}

func decodeStaff(raw json.RawMessage) StaffRef {
	if s := plainString(raw); s != nil {
		return PlainStaff(*s)
	}
	obj, ok := object(raw)
	if !ok {
		return StaffRef{}
	}
	ref := DetailedStaff(stringField(obj["name"]), stringField(obj["username"]))
	ref.ID = firstString(obj, "id", "_id")
	return ref
}

func decodeTable(raw json.RawMessage) *TableRef {
	if id := stringField(raw); id != nil {
		return &TableRef{ID: id}
	}
	obj, ok := object(raw)
	if !ok {
		return nil
	}
	return &TableRef{
		ID:   firstString(obj, "id", "_id"),
		Name: stringField(obj["name"]),
	}
}

func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// objectList decodes a JSON array, skipping entries that are not objects.
func objectList(raw json.RawMessage) ([]map[string]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	out := make([]map[string]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		if obj, ok := object(e); ok {
			out = append(out, obj)
		}
	}
	return out, true
}

func firstString(fields map[string]json.RawMessage, keys ...string) *string {
	for _, k := range keys {
		if s := stringField(fields[k]); s != nil && *s != "" {
			return s
		}
	}
	return nil
}

// stringField accepts JSON strings and numbers (rendered verbatim).
func stringField(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch {
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return &s
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		if _, err := strconv.ParseFloat(string(raw), 64); err != nil {
			return nil
		}
		s := string(raw)
		return &s
	}
	return nil
}

// plainString accepts JSON strings only.
func plainString(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return nil
	}
	return stringField(raw)
}

// decimalField accepts JSON numbers and numeric strings.
func decimalField(raw json.RawMessage) *decimal.Decimal {
	s := stringField(raw)
	if s == nil {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &d
}

func numberField(raw json.RawMessage) *float64 {
	s := stringField(raw)
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func boolField(raw json.RawMessage) *bool {
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	return nil
}

func timestampField(raw json.RawMessage) *Timestamp {
	ts, ok := ParseTimestamp(raw)
	if !ok {
		return nil
	}
	return &ts
}
