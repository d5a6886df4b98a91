package approval

// Status is the aggregate outcome of a leave request. It is always derived
// from the steps and never stored.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Resolve derives the aggregate status. Any rejection wins; otherwise the
// request is approved once every step is approved or skipped.
func Resolve(steps []ApprovalStep) Status {
	for _, s := range steps {
		if s.Status == StepRejected {
			return StatusRejected
		}
	}
	for _, s := range steps {
		if s.Status != StepApproved && s.Status != StepSkipped {
			return StatusPending
		}
	}
	return StatusApproved
}
