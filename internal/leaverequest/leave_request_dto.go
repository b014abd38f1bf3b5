package leaverequest

type CreateLeaveRequest struct {
	UserID      string  `json:"user_id" binding:"required,uuid"`
	LeaveType   string  `json:"leave_type" binding:"required,oneof=VACATION SICK PERSONAL MATERNITY PATERNITY BEREAVEMENT UNPAID OTHER"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	IsHalfDay   bool    `json:"is_half_day"`
	HalfDayType *string `json:"half_day_type" binding:"omitempty,oneof=MORNING AFTERNOON"`
	Reason      string  `json:"reason"`
	ApproverID  *string `json:"approver_id" binding:"omitempty,uuid"`
	SaveAsDraft bool    `json:"save_as_draft"`
}

type ApproveLeaveRequest struct {
	Comments *string `json:"comments"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

// UpdatePatch is the per-item payload of a bulk update. All fields are
// optional; status changes run through the same transition guards as the
// single-item operations.
type UpdatePatch struct {
	LeaveType   *string `json:"leave_type" binding:"omitempty,oneof=VACATION SICK PERSONAL MATERNITY PATERNITY BEREAVEMENT UNPAID OTHER"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsHalfDay   *bool   `json:"is_half_day"`
	HalfDayType *string `json:"half_day_type" binding:"omitempty,oneof=MORNING AFTERNOON"`
	Reason      *string `json:"reason"`
	Status      *string `json:"status" binding:"omitempty,oneof=DRAFT PENDING APPROVED REJECTED CANCELLED"`
	// RejectionReason is only consulted when Status is REJECTED.
	RejectionReason *string `json:"rejection_reason"`
}

type BulkUpdateRequest struct {
	IDs   []string    `json:"ids" binding:"required,min=1,dive,uuid"`
	Patch UpdatePatch `json:"patch" binding:"required"`
}

type Filters struct {
	UserID     *string `form:"user_id" binding:"omitempty,uuid"`
	LeaveType  *string `form:"leave_type"`
	Status     *string `form:"status"`
	ApproverID *string `form:"approver_id" binding:"omitempty,uuid"`
	StartDate  *string `form:"start_date"`
	EndDate    *string `form:"end_date"`
	IsHalfDay  *bool   `form:"is_half_day"`
}

type OwnerInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department_id,omitempty"`
}

type LeaveRequestResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	LeaveType        string     `json:"leave_type"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	IsHalfDay        bool       `json:"is_half_day"`
	HalfDayType      *string    `json:"half_day_type,omitempty"`
	TotalDays        float64    `json:"total_days"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status"`
	ApproverID       *string    `json:"approver_id,omitempty"`
	ApprovedAt       *string    `json:"approved_at,omitempty"`
	RejectedAt       *string    `json:"rejected_at,omitempty"`
	RejectionReason  *string    `json:"rejection_reason,omitempty"`
	ApprovalComments *string    `json:"approval_comments,omitempty"`
	DeletedAt        *string    `json:"deleted_at,omitempty"`
	Owner            *OwnerInfo `json:"owner,omitempty"`
}

type BulkItemFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type BulkUpdateResponse struct {
	Updated []LeaveRequestResponse `json:"updated"`
	Failed  []BulkItemFailure      `json:"failed,omitempty"`
}
