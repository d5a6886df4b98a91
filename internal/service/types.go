package service

import "github.com/pesio-ai/be-hr-leave/internal/approval"

// SubmitLeaveRequest represents a leave submission.
type SubmitLeaveRequest struct {
	Requester string `json:"-"`
	Category  string `json:"category" validate:"required,max=64"`
	Reason    string `json:"reason" validate:"max=1024"`
	Start     string `json:"start" validate:"required,datetime=2006-01-02"`
	End       string `json:"end" validate:"required,datetime=2006-01-02"`
}

// SubmitResult is the created request plus non-fatal warnings raised while
// building its chain.
type SubmitResult struct {
	Request  *LeaveView `json:"request"`
	Warnings []string   `json:"warnings,omitempty"`
}

// ActRequest represents an approve or reject on one step.
type ActRequest struct {
	LeaveID  string
	Role     approval.Role
	Decision approval.Decision
	Actor    string
	Note     string
}

// RegisterUserRequest represents a new directory entry.
type RegisterUserRequest struct {
	Username   string   `json:"username" validate:"required,min=2,max=64"`
	Roles      []string `json:"roles" validate:"required,min=1,dive,required"`
	Department string   `json:"department" validate:"max=64"`
	Mentor     string   `json:"mentor" validate:"max=64"`
	Supervisor string   `json:"supervisor" validate:"max=64"`
}

// LeaveView is a request as exposed to presentation collaborators, with
// the aggregate status derived at read time.
type LeaveView struct {
	*approval.LeaveRequest
	AggregateStatus approval.Status `json:"aggregate_status"`
}

// NewLeaveView derives the aggregate status for req.
func NewLeaveView(req *approval.LeaveRequest) *LeaveView {
	return &LeaveView{LeaveRequest: req, AggregateStatus: req.Status()}
}

// LeaveHistory is a requester's own requests with a summary.
type LeaveHistory struct {
	Requests     []*LeaveView `json:"requests"`
	Count        int          `json:"count"`
	ApprovedDays int          `json:"approved_days"`
}

// UserDays is a requester's approved leave total.
type UserDays struct {
	Username string `json:"username"`
	Days     int    `json:"days"`
}

// LeaveStats summarises all requests for administrators.
type LeaveStats struct {
	Total        int            `json:"total"`
	ByCategory   map[string]int `json:"by_category"`
	ByRole       map[string]int `json:"by_role"`
	ApprovedDays []UserDays     `json:"approved_days"`
}
