package approval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	mentors map[string]string
	err     error
}

func (d *stubDirectory) FindUser(ctx context.Context, username string) (*User, error) {
	return nil, ErrUserNotFound
}

func (d *stubDirectory) FindMentorInDepartment(ctx context.Context, department string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	return d.mentors[department], nil
}

func strPtr(s string) *string { return &s }

func steps(mentor, supervisor, admin StepStatus) []ApprovalStep {
	return []ApprovalStep{
		{Role: RoleMentor, Status: mentor},
		{Role: RoleSupervisor, Status: supervisor},
		{Role: RoleAdmin, Status: admin},
	}
}

func TestBuildChain(t *testing.T) {
	dir := &stubDirectory{mentors: map[string]string{"IT": "mentor_lee"}}

	testCases := []struct {
		description string
		requester   *User
		expect      []ApprovalStep
		unresolved  bool
	}{
		{
			description: "employee skips mentor",
			requester:   &User{Username: "alice", Roles: RoleSet{RoleEmployee}, Department: "HR", Supervisor: strPtr("sup_hr")},
			expect: []ApprovalStep{
				{Role: RoleMentor, Status: StepSkipped},
				{Role: RoleSupervisor, Actor: strPtr("sup_hr"), Status: StepPending},
				{Role: RoleAdmin, Status: StepPending},
			},
		},
		{
			description: "intern with recorded mentor",
			requester:   &User{Username: "bob", Roles: RoleSet{RoleEmployee, RoleIntern}, Department: "HR", Mentor: strPtr("mentor_kim"), Supervisor: strPtr("sup_hr")},
			expect: []ApprovalStep{
				{Role: RoleMentor, Actor: strPtr("mentor_kim"), Status: StepPending},
				{Role: RoleSupervisor, Actor: strPtr("sup_hr"), Status: StepPending},
				{Role: RoleAdmin, Status: StepPending},
			},
		},
		{
			description: "intern falls back to department mentor",
			requester:   &User{Username: "dan", Roles: RoleSet{RoleIntern}, Department: "IT"},
			expect: []ApprovalStep{
				{Role: RoleMentor, Actor: strPtr("mentor_lee"), Status: StepPending},
				{Role: RoleSupervisor, Status: StepPending},
				{Role: RoleAdmin, Status: StepPending},
			},
		},
		{
			description: "intern without any mentor stays pending",
			requester:   &User{Username: "eve", Roles: RoleSet{RoleIntern}, Department: "Finance", Supervisor: strPtr("sup_fin")},
			expect: []ApprovalStep{
				{Role: RoleMentor, Status: StepPending},
				{Role: RoleSupervisor, Actor: strPtr("sup_fin"), Status: StepPending},
				{Role: RoleAdmin, Status: StepPending},
			},
			unresolved: true,
		},
		{
			description: "contract worker in mentored department still skips mentor",
			requester:   &User{Username: "carl", Roles: RoleSet{RoleEmployee, RoleContract}, Department: "IT"},
			expect: []ApprovalStep{
				{Role: RoleMentor, Status: StepSkipped},
				{Role: RoleSupervisor, Status: StepPending},
				{Role: RoleAdmin, Status: StepPending},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := BuildChain(context.Background(), testCase.requester, dir)
			if testCase.unresolved {
				assert.ErrorIs(t, err, ErrUnresolvedMentor)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestBuildChain_DirectoryFailure(t *testing.T) {
	dir := &stubDirectory{err: errors.New("connection refused")}
	intern := &User{Username: "eve", Roles: RoleSet{RoleIntern}, Department: "IT"}

	chain, err := BuildChain(context.Background(), intern, dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnresolvedMentor)
	assert.Nil(t, chain)
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		description string
		steps       []ApprovalStep
		expect      Status
	}{
		{"supervisor rejection dominates", steps(StepApproved, StepRejected, StepPending), StatusRejected},
		{"mentor rejection dominates later approvals", steps(StepRejected, StepApproved, StepApproved), StatusRejected},
		{"skipped and approved", steps(StepSkipped, StepApproved, StepApproved), StatusApproved},
		{"all approved", steps(StepApproved, StepApproved, StepApproved), StatusApproved},
		{"admin pending", steps(StepSkipped, StepApproved, StepPending), StatusPending},
		{"fresh chain", steps(StepPending, StepPending, StepPending), StatusPending},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, Resolve(testCase.steps))
			assert.Equal(t, testCase.expect, Resolve(testCase.steps), "resolve must be idempotent")
		})
	}
}

func TestStepTransitions(t *testing.T) {
	step := ApprovalStep{Role: RoleSupervisor, Status: StepPending}
	assert.True(t, step.Approve("ok"))
	assert.Equal(t, StepApproved, step.Status)
	assert.Equal(t, "ok", step.Note)

	assert.False(t, step.Reject("too late"))
	assert.Equal(t, StepApproved, step.Status)
	assert.Equal(t, "ok", step.Note)

	skipped := ApprovalStep{Role: RoleMentor, Status: StepSkipped}
	assert.False(t, skipped.Approve(""))
	assert.False(t, skipped.Reject(""))
	assert.Equal(t, StepSkipped, skipped.Status)
}

func TestCheckAct(t *testing.T) {
	admin := RoleSet{RoleAdmin}
	supervisor := RoleSet{RoleSupervisor, RoleEmployee}
	mentor := RoleSet{RoleMentor}

	testCases := []struct {
		description  string
		steps        []ApprovalStep
		role         Role
		decision     Decision
		actor        RoleSet
		expectErr    error
		precondition Precondition
	}{
		{description: "supervisor before mentor", steps: steps(StepPending, StepPending, StepPending), role: RoleSupervisor, decision: DecisionApprove, actor: supervisor},
		{description: "mentor after supervisor", steps: steps(StepPending, StepApproved, StepPending), role: RoleMentor, decision: DecisionReject, actor: mentor},
		{description: "wrong role", steps: steps(StepPending, StepPending, StepPending), role: RoleMentor, decision: DecisionApprove, actor: supervisor, expectErr: ErrUnauthorizedActor},
		{description: "already approved", steps: steps(StepSkipped, StepApproved, StepPending), role: RoleSupervisor, decision: DecisionReject, actor: supervisor, expectErr: ErrInvalidTransition},
		{description: "skipped mentor", steps: steps(StepSkipped, StepPending, StepPending), role: RoleMentor, decision: DecisionApprove, actor: mentor, expectErr: ErrInvalidTransition},
		{description: "admin with pending mentor", steps: steps(StepPending, StepApproved, StepPending), role: RoleAdmin, decision: DecisionApprove, actor: admin, expectErr: ErrGatingViolation, precondition: PreconditionMentorPending},
		{description: "admin with pending supervisor", steps: steps(StepSkipped, StepPending, StepPending), role: RoleAdmin, decision: DecisionApprove, actor: admin, expectErr: ErrGatingViolation, precondition: PreconditionSupervisorNotApproved},
		{description: "admin with rejected supervisor", steps: steps(StepSkipped, StepRejected, StepPending), role: RoleAdmin, decision: DecisionApprove, actor: admin, expectErr: ErrGatingViolation, precondition: PreconditionSupervisorNotApproved},
		{description: "admin with rejected mentor", steps: steps(StepRejected, StepApproved, StepPending), role: RoleAdmin, decision: DecisionApprove, actor: admin, expectErr: ErrGatingViolation, precondition: PreconditionUpstreamRejected},
		{description: "admin after skipped mentor", steps: steps(StepSkipped, StepApproved, StepPending), role: RoleAdmin, decision: DecisionApprove, actor: admin},
		{description: "admin after approved mentor", steps: steps(StepApproved, StepApproved, StepPending), role: RoleAdmin, decision: DecisionApprove, actor: admin},
		{description: "admin reject is not cross gated", steps: steps(StepPending, StepPending, StepPending), role: RoleAdmin, decision: DecisionReject, actor: admin},
		{description: "non admin on admin step", steps: steps(StepSkipped, StepApproved, StepPending), role: RoleAdmin, decision: DecisionApprove, actor: supervisor, expectErr: ErrUnauthorizedActor},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			req := &LeaveRequest{ID: "1", Steps: testCase.steps}
			err := CheckAct(req, testCase.role, testCase.decision, testCase.actor)
			if testCase.expectErr == nil {
				assert.NoError(t, err)
				assert.True(t, CanAct(req, testCase.role, testCase.decision, testCase.actor))
				return
			}
			assert.ErrorIs(t, err, testCase.expectErr)
			assert.False(t, CanAct(req, testCase.role, testCase.decision, testCase.actor))
			if testCase.precondition != "" {
				var gatingErr *GatingError
				require.True(t, errors.As(err, &gatingErr))
				assert.Equal(t, testCase.precondition, gatingErr.Precondition)
			}
		})
	}
}

func TestApply(t *testing.T) {
	req := &LeaveRequest{Steps: steps(StepSkipped, StepPending, StepPending)}

	assert.True(t, Apply(req, RoleSupervisor, DecisionReject, "busy week"))
	assert.Equal(t, StatusRejected, req.Status())

	// a bypassed admin approval cannot lift the rejection
	assert.True(t, Apply(req, RoleAdmin, DecisionApprove, ""))
	assert.Equal(t, StatusRejected, req.Status())

	assert.False(t, Apply(req, RoleMentor, DecisionApprove, ""))
	assert.Equal(t, StepSkipped, req.Step(RoleMentor).Status)
}

func TestAvailableActions(t *testing.T) {
	req := &LeaveRequest{Steps: steps(StepPending, StepPending, StepPending)}

	assert.Equal(t, []Action{
		{Role: RoleMentor, Decision: DecisionApprove},
		{Role: RoleMentor, Decision: DecisionReject},
	}, AvailableActions(req, RoleSet{RoleMentor}))

	assert.Equal(t, []Action{
		{Role: RoleAdmin, Decision: DecisionReject},
	}, AvailableActions(req, RoleSet{RoleAdmin}))

	assert.Empty(t, AvailableActions(req, RoleSet{RoleEmployee}))
}

func TestInclusiveDays(t *testing.T) {
	days, err := InclusiveDays("2024-01-10", "2024-01-12")
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	days, err = InclusiveDays("2024-01-10", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, 1, days)

	days, err = InclusiveDays("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	// ranges longer than time.Duration can hold
	days, err = InclusiveDays("1700-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 118339, days)

	days, err = InclusiveDays("0001-01-01", "9999-12-31")
	require.NoError(t, err)
	assert.Equal(t, 3652059, days)

	_, err = InclusiveDays("2024-01-12", "2024-01-10")
	assert.Error(t, err)

	_, err = InclusiveDays("10/01/2024", "2024-01-10")
	assert.Error(t, err)
}

func TestParseRoles(t *testing.T) {
	roles, err := ParseRoles([]string{"Employee", "intern", "employee"})
	require.NoError(t, err)
	assert.Equal(t, RoleSet{RoleEmployee, RoleIntern}, roles)
	assert.Equal(t, RoleEmployee, roles.Primary())

	_, err = ParseRoles([]string{"manager"})
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	req := &LeaveRequest{
		ID:             "1",
		RequesterRoles: RoleSet{RoleIntern},
		Steps:          []ApprovalStep{{Role: RoleMentor, Actor: strPtr("mentor_lee"), Status: StepPending}},
	}
	c := req.Clone()
	c.Steps[0].Status = StepApproved
	*c.Steps[0].Actor = "someone"
	c.RequesterRoles[0] = RoleAdmin

	assert.Equal(t, StepPending, req.Steps[0].Status)
	assert.Equal(t, "mentor_lee", *req.Steps[0].Actor)
	assert.Equal(t, RoleIntern, req.RequesterRoles[0])
}
