package enum

import (
	"encoding/json"
	"strings"
)

// RangePreset is a quick date range on the revenue overview
type RangePreset int

const (
	RangePresetCustom RangePreset = 0
	RangePresetToday  RangePreset = 1
	RangePresetWeek   RangePreset = 2
	RangePresetMonth  RangePreset = 3
	RangePresetYear   RangePreset = 4
)

func (p RangePreset) String() string {
	names := [...]string{"custom", "today", "week", "month", "year"}
	if int(p) < 0 || int(p) >= len(names) {
		return "custom"
	}
	return names[p]
}

func (p RangePreset) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *RangePreset) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*p = ParseRangePreset(str)
	return nil
}

// ParseRangePreset maps a query value to a preset; empty or unknown means custom.
func ParseRangePreset(s string) RangePreset {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return RangePresetToday
	case "week":
		return RangePresetWeek
	case "month":
		return RangePresetMonth
	case "year":
		return RangePresetYear
	default:
		return RangePresetCustom
	}
}
