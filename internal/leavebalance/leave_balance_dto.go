package leavebalance

type UpsertBalanceRequest struct {
	UserID         string  `json:"user_id" binding:"required,uuid"`
	LeaveType      string  `json:"leave_type" binding:"required,oneof=VACATION SICK PERSONAL MATERNITY PATERNITY BEREAVEMENT UNPAID OTHER"`
	Year           int     `json:"year" binding:"required,min=2000,max=2200"`
	TotalAllowance float64 `json:"total_allowance" binding:"min=0"`
	CarriedOver    float64 `json:"carried_over" binding:"min=0"`
}

type UpdateBalanceRequest struct {
	TotalAllowance *float64 `json:"total_allowance" binding:"omitempty,min=0"`
	UsedDays       *float64 `json:"used_days" binding:"omitempty,min=0"`
}

type CarryOverRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid"`
	FromYear int    `json:"from_year" binding:"required,min=2000,max=2200"`
	ToYear   int    `json:"to_year" binding:"required,min=2000,max=2200"`
}

type BalanceResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	LeaveType      string  `json:"leave_type"`
	Year           int     `json:"year"`
	TotalAllowance float64 `json:"total_allowance"`
	UsedDays       float64 `json:"used_days"`
	RemainingDays  float64 `json:"remaining_days"`
	CarriedOver    float64 `json:"carried_over"`
}

// BalanceSummary aggregates a user's rows for one year; dashboards consume it.
type BalanceSummary struct {
	UserID         string  `json:"user_id"`
	Year           int     `json:"year"`
	TotalRemaining float64 `json:"total_remaining"`
	TotalUsed      float64 `json:"total_used"`
}
