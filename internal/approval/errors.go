package approval

import (
	"fmt"

	"github.com/pesio-ai/be-hr-leave/internal/errors"
)

var (
	// ErrRequestNotFound is returned when an id is absent from the repository.
	ErrRequestNotFound = errors.New(errors.ErrCodeNotFound, "leave request not found")
	// ErrUserNotFound is returned by directories for unknown usernames.
	ErrUserNotFound = errors.New(errors.ErrCodeNotFound, "user not found")
	// ErrStepNotFound is returned when the chain has no step for a role.
	ErrStepNotFound = errors.New(errors.ErrCodeNotFound, "approval step not found")
	// ErrInvalidTransition is returned when acting on a step that is not pending.
	ErrInvalidTransition = errors.New(errors.ErrCodeConflict, "approval step is not pending")
	// ErrUnauthorizedActor is returned when the actor lacks the step's role.
	ErrUnauthorizedActor = errors.New(errors.ErrCodeForbidden, "actor does not hold the step role")
	// ErrGatingViolation is the sentinel matched by every *GatingError.
	ErrGatingViolation = errors.New(errors.ErrCodeConflict, "admin approval is gated")
	// ErrUnresolvedMentor is reported, not fatal: the mentor step is created
	// pending with no actor.
	ErrUnresolvedMentor = errors.New(errors.ErrCodeNotFound, "no mentor could be resolved for intern")
)

// Precondition names the gating rule an admin approval failed.
type Precondition string

const (
	PreconditionMentorPending         Precondition = "mentor_pending"
	PreconditionSupervisorNotApproved Precondition = "supervisor_not_approved"
	PreconditionUpstreamRejected      Precondition = "upstream_rejected"
)

// GatingError reports which precondition blocked an admin approval.
type GatingError struct {
	Precondition Precondition
	Detail       string
}

func (e *GatingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrGatingViolation.Message, e.Detail)
}

// Unwrap exposes the sentinel so errors.Is and errors.CodeOf work.
func (e *GatingError) Unwrap() error {
	return ErrGatingViolation
}
