package approval

import "fmt"

// Decision is the action an actor takes on a step.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Valid reports whether d is a known decision.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// CheckAct returns nil when actorRoles may apply decision to the step owned
// by role right now, or the error describing the failed precondition.
//
// Mentor and supervisor steps are independent of each other. Only approval
// of the admin step is cross-gated on the rest of the chain.
func CheckAct(req *LeaveRequest, role Role, decision Decision, actorRoles RoleSet) error {
	step := req.Step(role)
	if step == nil {
		return fmt.Errorf("%w: %s", ErrStepNotFound, role)
	}
	if step.Status != StepPending {
		return fmt.Errorf("%w: %s step is %s", ErrInvalidTransition, role, step.Status)
	}
	if !actorRoles.Has(role) {
		return fmt.Errorf("%w: %s", ErrUnauthorizedActor, role)
	}
	if role == RoleAdmin && decision == DecisionApprove {
		return checkAdminApproval(req)
	}
	return nil
}

// CanAct is the boolean form of CheckAct.
func CanAct(req *LeaveRequest, role Role, decision Decision, actorRoles RoleSet) bool {
	return CheckAct(req, role, decision, actorRoles) == nil
}

func checkAdminApproval(req *LeaveRequest) error {
	if mentor := req.Step(RoleMentor); mentor != nil && mentor.Status == StepPending {
		return &GatingError{
			Precondition: PreconditionMentorPending,
			Detail:       "mentor step is still pending",
		}
	}
	if sup := req.Step(RoleSupervisor); sup == nil || sup.Status != StepApproved {
		status := StepStatus("missing")
		if sup != nil {
			status = sup.Status
		}
		return &GatingError{
			Precondition: PreconditionSupervisorNotApproved,
			Detail:       fmt.Sprintf("supervisor step is %s", status),
		}
	}
	if Resolve(req.Steps) == StatusRejected {
		return &GatingError{
			Precondition: PreconditionUpstreamRejected,
			Detail:       "request has already been rejected",
		}
	}
	return nil
}

// Apply runs the step transition for decision. It does not re-check gating.
func Apply(req *LeaveRequest, role Role, decision Decision, note string) bool {
	step := req.Step(role)
	if step == nil {
		return false
	}
	switch decision {
	case DecisionApprove:
		return step.Approve(note)
	case DecisionReject:
		return step.Reject(note)
	default:
		return false
	}
}

// Action is a step decision an actor may currently take.
type Action struct {
	Role     Role     `json:"role"`
	Decision Decision `json:"decision"`
}

// AvailableActions lists every decision actorRoles may take on req now.
func AvailableActions(req *LeaveRequest, actorRoles RoleSet) []Action {
	var out []Action
	for _, step := range req.Steps {
		for _, d := range []Decision{DecisionApprove, DecisionReject} {
			if CanAct(req, step.Role, d, actorRoles) {
				out = append(out, Action{Role: step.Role, Decision: d})
			}
		}
	}
	return out
}
