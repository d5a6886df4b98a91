package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
	"github.com/pesio-ai/be-hr-leave/internal/client"
	"github.com/pesio-ai/be-hr-leave/internal/errors"
	"github.com/pesio-ai/be-hr-leave/internal/logger"
)

// LeaveService orchestrates submission and the multi-step approval chain.
// Every mutating operation reads the record once, decides, and writes it
// back once; concurrent writers to the same id are last-write-wins.
type LeaveService struct {
	repo      LeaveRepositoryInterface
	directory DirectoryInterface
	events    EventPublisher
	log       *logger.Logger
	now       func() time.Time
	newID     func() string
}

// Option customises a LeaveService.
type Option func(*LeaveService)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *LeaveService) { s.now = now }
}

// WithIDGenerator overrides request id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *LeaveService) { s.newID = newID }
}

// NewLeaveService creates a new LeaveService. events may be nil.
func NewLeaveService(
	repo LeaveRepositoryInterface,
	directory DirectoryInterface,
	events EventPublisher,
	log *logger.Logger,
	opts ...Option,
) *LeaveService {
	if events == nil {
		events = noopPublisher{}
	}
	s := &LeaveService{
		repo:      repo,
		directory: directory,
		events:    events,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ── Submission ────────────────────────────────────────────────────────────────

// Submit builds the approval chain for the requester and stores the request.
func (s *LeaveService) Submit(ctx context.Context, req *SubmitLeaveRequest) (*SubmitResult, error) {
	if strings.TrimSpace(req.Requester) == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "requester is required")
	}
	days, err := approval.InclusiveDays(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	requester, err := s.findUser(ctx, req.Requester)
	if err != nil {
		return nil, err
	}

	var warnings []string
	steps, err := approval.BuildChain(ctx, requester, s.directory)
	if errors.Is(err, approval.ErrUnresolvedMentor) {
		warnings = append(warnings, err.Error())
		s.log.Warn().
			Str("requester", requester.Username).
			Str("department", requester.Department).
			Msg("No mentor resolved for intern; mentor step left unassigned")
	} else if err != nil {
		return nil, err
	}

	rec := &approval.LeaveRequest{
		ID:             s.newID(),
		Requester:      requester.Username,
		RequesterRoles: append(approval.RoleSet(nil), requester.Roles...),
		Department:     requester.Department,
		Category:       strings.TrimSpace(req.Category),
		Reason:         strings.TrimSpace(req.Reason),
		Start:          req.Start,
		End:            req.End,
		Days:           days,
		Steps:          steps,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Put(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("leave_id", rec.ID).
		Str("requester", rec.Requester).
		Str("department", rec.Department).
		Int("days", rec.Days).
		Int("total_steps", len(rec.Steps)).
		Msg("Leave request submitted")

	s.events.PublishLeaveEvent(ctx, client.EventLeaveSubmitted, rec, rec.Requester, "")

	return &SubmitResult{Request: NewLeaveView(rec), Warnings: warnings}, nil
}

// ── Approve / Reject ──────────────────────────────────────────────────────────

// Approve records an approval on the step owned by role.
func (s *LeaveService) Approve(ctx context.Context, leaveID string, role approval.Role, actor, note string) (*LeaveView, error) {
	return s.Act(ctx, &ActRequest{LeaveID: leaveID, Role: role, Decision: approval.DecisionApprove, Actor: actor, Note: note})
}

// Reject records a rejection on the step owned by role.
func (s *LeaveService) Reject(ctx context.Context, leaveID string, role approval.Role, actor, note string) (*LeaveView, error) {
	return s.Act(ctx, &ActRequest{LeaveID: leaveID, Role: role, Decision: approval.DecisionReject, Actor: actor, Note: note})
}

// Act loads the request, checks the gating policy, applies the transition
// and stores the updated record.
func (s *LeaveService) Act(ctx context.Context, req *ActRequest) (*LeaveView, error) {
	if !req.Role.IsStepRole() {
		return nil, errors.InvalidInput("role", fmt.Sprintf("'%s' does not own an approval step", req.Role))
	}
	if !req.Decision.Valid() {
		return nil, errors.InvalidInput("decision", fmt.Sprintf("unknown decision '%s'", req.Decision))
	}

	rec, err := s.repo.GetByID(ctx, req.LeaveID)
	if err != nil {
		return nil, err
	}
	actor, err := s.findActor(ctx, req.Actor)
	if err != nil {
		return nil, err
	}

	if err := approval.CheckAct(rec, req.Role, req.Decision, actor.Roles); err != nil {
		s.log.Warn().Err(err).
			Str("leave_id", rec.ID).
			Str("role", string(req.Role)).
			Str("decision", string(req.Decision)).
			Str("actor", actor.Username).
			Msg("Leave step action refused")
		return nil, err
	}

	approval.Apply(rec, req.Role, req.Decision, req.Note)

	if err := s.repo.Put(ctx, rec); err != nil {
		return nil, err
	}

	view := NewLeaveView(rec)
	s.log.Info().
		Str("leave_id", rec.ID).
		Str("role", string(req.Role)).
		Str("decision", string(req.Decision)).
		Str("actor", actor.Username).
		Str("aggregate_status", string(view.AggregateStatus)).
		Msg("Leave step updated")

	eventType := client.EventLeaveStepApproved
	if req.Decision == approval.DecisionReject {
		eventType = client.EventLeaveStepRejected
	}
	s.events.PublishLeaveEvent(ctx, eventType, rec, actor.Username, req.Role)

	return view, nil
}

// ── Query helpers ─────────────────────────────────────────────────────────────

// Get returns one request with its derived status.
func (s *LeaveService) Get(ctx context.Context, id string) (*LeaveView, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewLeaveView(rec), nil
}

// AvailableActions lists the step decisions actor may take on a request now.
func (s *LeaveService) AvailableActions(ctx context.Context, id, actor string) ([]approval.Action, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.findActor(ctx, actor)
	if err != nil {
		return nil, err
	}
	actions := approval.AvailableActions(rec, user.Roles)
	if actions == nil {
		actions = []approval.Action{}
	}
	return actions, nil
}

// ListForRequester returns the requester's own requests, newest first, with
// the total of approved days.
func (s *LeaveService) ListForRequester(ctx context.Context, requester string) (*LeaveHistory, error) {
	all, err := s.listNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	history := &LeaveHistory{Requests: []*LeaveView{}}
	for _, rec := range all {
		if rec.Requester != requester {
			continue
		}
		view := NewLeaveView(rec)
		history.Requests = append(history.Requests, view)
		if view.AggregateStatus == approval.StatusApproved {
			history.ApprovedDays += rec.Days
		}
	}
	history.Count = len(history.Requests)
	return history, nil
}

// ListForSupervisor returns requests from the supervisor's department.
func (s *LeaveService) ListForSupervisor(ctx context.Context, username string) ([]*LeaveView, error) {
	user, err := s.requireRole(ctx, username, approval.RoleSupervisor)
	if err != nil {
		return nil, err
	}
	all, err := s.listNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	return filterViews(all, func(rec *approval.LeaveRequest) bool {
		return inSupervisorScope(rec, user)
	}), nil
}

// ListForMentor returns intern requests assigned to the mentor, either by
// name on the mentor step or by shared department.
func (s *LeaveService) ListForMentor(ctx context.Context, username string) ([]*LeaveView, error) {
	user, err := s.requireRole(ctx, username, approval.RoleMentor)
	if err != nil {
		return nil, err
	}
	all, err := s.listNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	return filterViews(all, func(rec *approval.LeaveRequest) bool {
		return inMentorScope(rec, user)
	}), nil
}

// PendingCount is the notification counter for role: the number of requests
// in the user's scope whose step for role is still pending.
func (s *LeaveService) PendingCount(ctx context.Context, username string, role approval.Role) (int, error) {
	if !role.IsStepRole() {
		return 0, errors.InvalidInput("role", fmt.Sprintf("'%s' does not own an approval step", role))
	}
	user, err := s.requireRole(ctx, username, role)
	if err != nil {
		return 0, err
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, rec := range all {
		step := rec.Step(role)
		if step == nil || step.Status != approval.StepPending {
			continue
		}
		switch role {
		case approval.RoleSupervisor:
			if !inSupervisorScope(rec, user) {
				continue
			}
		case approval.RoleMentor:
			if !inMentorScope(rec, user) {
				continue
			}
		}
		count++
	}
	return count, nil
}

// Search lists every request matching keyword for an administrator. The
// match is case-insensitive over requester, department, category and reason.
func (s *LeaveService) Search(ctx context.Context, actor, keyword string) ([]*LeaveView, error) {
	if _, err := s.requireRole(ctx, actor, approval.RoleAdmin); err != nil {
		return nil, err
	}
	all, err := s.listNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	kw := strings.ToLower(strings.TrimSpace(keyword))
	return filterViews(all, func(rec *approval.LeaveRequest) bool {
		if kw == "" {
			return true
		}
		for _, field := range []string{rec.Requester, rec.Department, rec.Category, rec.Reason} {
			if strings.Contains(strings.ToLower(field), kw) {
				return true
			}
		}
		return false
	}), nil
}

// Stats summarises all requests for an administrator.
func (s *LeaveService) Stats(ctx context.Context, actor string) (*LeaveStats, error) {
	if _, err := s.requireRole(ctx, actor, approval.RoleAdmin); err != nil {
		return nil, err
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &LeaveStats{
		Total:        len(all),
		ByCategory:   make(map[string]int),
		ByRole:       make(map[string]int),
		ApprovedDays: []UserDays{},
	}
	totals := make(map[string]int)
	for _, rec := range all {
		stats.ByCategory[rec.Category]++
		role := string(rec.RequesterRoles.Primary())
		if role == "" {
			role = "user"
		}
		stats.ByRole[role]++
		if rec.Status() == approval.StatusApproved {
			totals[rec.Requester] += rec.Days
		}
	}
	for username, days := range totals {
		stats.ApprovedDays = append(stats.ApprovedDays, UserDays{Username: username, Days: days})
	}
	sort.Slice(stats.ApprovedDays, func(i, j int) bool {
		a, b := stats.ApprovedDays[i], stats.ApprovedDays[j]
		if a.Days == b.Days {
			return a.Username < b.Username
		}
		return a.Days > b.Days
	})
	return stats, nil
}

// ── Directory ─────────────────────────────────────────────────────────────────

// RegisterUser adds a directory entry.
func (s *LeaveService) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*approval.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, errors.InvalidInput("username", "username is required")
	}
	roles, err := approval.ParseRoles(req.Roles)
	if err != nil {
		return nil, errors.InvalidInput("roles", err.Error())
	}
	if len(roles) == 0 {
		return nil, errors.InvalidInput("roles", "at least one role is required")
	}

	user := &approval.User{
		Username:   username,
		Roles:      roles,
		Department: strings.TrimSpace(req.Department),
		Mentor:     optional(req.Mentor),
		Supervisor: optional(req.Supervisor),
	}
	if err := s.directory.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("username", user.Username).
		Strs("roles", user.Roles.Strings()).
		Str("department", user.Department).
		Msg("Directory user registered")

	return user, nil
}

// ListUsers returns the directory in registration order. Admin only.
func (s *LeaveService) ListUsers(ctx context.Context, actor string) ([]*approval.User, error) {
	if _, err := s.requireRole(ctx, actor, approval.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.directory.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*approval.User{}
	}
	return users, nil
}

// ── Internal helpers ──────────────────────────────────────────────────────────

func (s *LeaveService) findUser(ctx context.Context, username string) (*approval.User, error) {
	user, err := s.directory.FindUser(ctx, username)
	if errors.Is(err, approval.ErrUserNotFound) {
		return nil, errors.NotFound("user", username)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// findActor resolves the acting user; unknown actors are unauthorized.
func (s *LeaveService) findActor(ctx context.Context, username string) (*approval.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "acting user is required")
	}
	user, err := s.directory.FindUser(ctx, username)
	if errors.Is(err, approval.ErrUserNotFound) {
		return nil, errors.Wrap(err, errors.ErrCodeUnauthorized, fmt.Sprintf("unknown acting user '%s'", username))
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *LeaveService) requireRole(ctx context.Context, username string, role approval.Role) (*approval.User, error) {
	user, err := s.findActor(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(role) {
		return nil, fmt.Errorf("%w: %s", approval.ErrUnauthorizedActor, role)
	}
	return user, nil
}

func (s *LeaveService) listNewestFirst(ctx context.Context) ([]*approval.LeaveRequest, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func inSupervisorScope(rec *approval.LeaveRequest, supervisor *approval.User) bool {
	return rec.Department == supervisor.Department
}

func inMentorScope(rec *approval.LeaveRequest, mentor *approval.User) bool {
	if !rec.RequesterRoles.Has(approval.RoleIntern) {
		return false
	}
	if step := rec.Step(approval.RoleMentor); step != nil && step.Actor != nil && *step.Actor == mentor.Username {
		return true
	}
	return mentor.Department != "" && rec.Department == mentor.Department
}

func filterViews(all []*approval.LeaveRequest, keep func(*approval.LeaveRequest) bool) []*LeaveView {
	out := []*LeaveView{}
	for _, rec := range all {
		if keep(rec) {
			out = append(out, NewLeaveView(rec))
		}
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
