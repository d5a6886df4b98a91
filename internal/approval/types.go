package approval

import "time"

// StepStatus is the state of a single approval step.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepApproved StepStatus = "approved"
	StepRejected StepStatus = "rejected"
	StepSkipped  StepStatus = "skipped"
)

// Terminal reports whether no further transition is possible.
func (s StepStatus) Terminal() bool {
	return s != StepPending
}

// ApprovalStep is one stage in a request's approval chain.
type ApprovalStep struct {
	Role   Role       `json:"role"`
	Actor  *string    `json:"actor"` // nil = any holder of Role
	Status StepStatus `json:"status"`
	Note   string     `json:"note"`
}

// Approve moves a pending step to approved. Steps in any other state are
// left untouched; callers gate with CheckAct first.
func (s *ApprovalStep) Approve(note string) bool {
	return s.transition(StepApproved, note)
}

// Reject moves a pending step to rejected. Same contract as Approve.
func (s *ApprovalStep) Reject(note string) bool {
	return s.transition(StepRejected, note)
}

func (s *ApprovalStep) transition(to StepStatus, note string) bool {
	if s.Status != StepPending {
		return false
	}
	s.Status = to
	if note != "" {
		s.Note = note
	}
	return true
}

// LeaveRequest is a submitted leave request with its approval chain. Only
// step status and note change after creation.
type LeaveRequest struct {
	ID             string         `json:"id"`
	Requester      string         `json:"requester"`
	RequesterRoles RoleSet        `json:"requester_roles"`
	Department     string         `json:"department"`
	Category       string         `json:"category"`
	Reason         string         `json:"reason"`
	Start          string         `json:"start"` // YYYY-MM-DD
	End            string         `json:"end"`   // YYYY-MM-DD
	Days           int            `json:"days"`
	Steps          []ApprovalStep `json:"steps"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Step returns the step owned by role, or nil.
func (r *LeaveRequest) Step(role Role) *ApprovalStep {
	for i := range r.Steps {
		if r.Steps[i].Role == role {
			return &r.Steps[i]
		}
	}
	return nil
}

// Status derives the aggregate status from the current steps.
func (r *LeaveRequest) Status() Status {
	return Resolve(r.Steps)
}

// Clone returns a deep copy so stored records never alias caller memory.
func (r *LeaveRequest) Clone() *LeaveRequest {
	if r == nil {
		return nil
	}
	c := *r
	c.RequesterRoles = append(RoleSet(nil), r.RequesterRoles...)
	c.Steps = make([]ApprovalStep, len(r.Steps))
	for i, s := range r.Steps {
		c.Steps[i] = s
		if s.Actor != nil {
			actor := *s.Actor
			c.Steps[i].Actor = &actor
		}
	}
	return &c
}

// User is the directory view of a person.
type User struct {
	Username   string  `json:"username" yaml:"username"`
	Roles      RoleSet `json:"roles" yaml:"roles"`
	Department string  `json:"department" yaml:"department"`
	Mentor     *string `json:"mentor,omitempty" yaml:"mentor,omitempty"`
	Supervisor *string `json:"supervisor,omitempty" yaml:"supervisor,omitempty"`
}

// HasRole reports whether the user holds r.
func (u *User) HasRole(r Role) bool {
	return u != nil && u.Roles.Has(r)
}
