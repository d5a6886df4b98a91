package approval

import (
	"context"
	"time"

	"github.com/pesio-ai/be-hr-leave/internal/errors"
)

const (
	dateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// Directory is the user lookup the engine depends on.
type Directory interface {
	// FindUser returns ErrUserNotFound for unknown usernames.
	FindUser(ctx context.Context, username string) (*User, error)
	// FindMentorInDepartment returns "" when no mentor is assigned.
	FindMentorInDepartment(ctx context.Context, department string) (string, error)
}

// BuildChain produces the ordered approval steps for a new request by
// requester. A non-nil chain is returned together with ErrUnresolvedMentor
// when an intern has no resolvable mentor; any other error is fatal.
func BuildChain(ctx context.Context, requester *User, dir Directory) ([]ApprovalStep, error) {
	steps := make([]ApprovalStep, 0, 3)
	var warning error

	if requester.HasRole(RoleIntern) {
		mentor, err := ResolveMentor(ctx, requester, dir)
		if err != nil {
			return nil, err
		}
		if mentor == nil {
			warning = ErrUnresolvedMentor
		}
		steps = append(steps, ApprovalStep{Role: RoleMentor, Actor: mentor, Status: StepPending})
	} else {
		steps = append(steps, ApprovalStep{Role: RoleMentor, Status: StepSkipped})
	}

	steps = append(steps,
		ApprovalStep{Role: RoleSupervisor, Actor: copyString(requester.Supervisor), Status: StepPending},
		ApprovalStep{Role: RoleAdmin, Status: StepPending},
	)
	return steps, warning
}

// ResolveMentor returns the requester's recorded mentor, else a mentor in
// the requester's department, else nil.
func ResolveMentor(ctx context.Context, requester *User, dir Directory) (*string, error) {
	if requester.Mentor != nil && *requester.Mentor != "" {
		return copyString(requester.Mentor), nil
	}
	if requester.Department == "" {
		return nil, nil
	}
	mentor, err := dir.FindMentorInDepartment(ctx, requester.Department)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to look up department mentor")
	}
	if mentor == "" {
		return nil, nil
	}
	return &mentor, nil
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end string) (int, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0, errors.InvalidInput("start", "invalid date format, expected YYYY-MM-DD")
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0, errors.InvalidInput("end", "invalid date format, expected YYYY-MM-DD")
	}
	if e.Before(s) {
		return 0, errors.InvalidInput("end", "end date cannot be before start date")
	}
	// Both dates parse to UTC midnight, so Unix seconds divide exactly.
	return int(e.Unix()/secondsPerDay-s.Unix()/secondsPerDay) + 1, nil
}

func copyString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
