package request

// OverviewRequest selects the overview range: a preset or explicit dd/mm/yyyy bounds.
type OverviewRequest struct {
	Range string `form:"range" binding:"omitempty,oneof=today week month year custom"`
	From  string `form:"from"`
	To    string `form:"to"`
}
