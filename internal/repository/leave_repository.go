package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
	"github.com/pesio-ai/be-hr-leave/internal/database"
	"github.com/pesio-ai/be-hr-leave/internal/errors"
)

const dateLayout = "2006-01-02"

// LeaveRepository stores leave requests in Postgres. The approval chain is
// kept as a JSONB array on the request row so a record is always written
// whole.
type LeaveRepository struct {
	db *database.DB
}

// NewLeaveRepository creates a new LeaveRepository.
func NewLeaveRepository(db *database.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Put inserts or fully replaces a request by id.
func (r *LeaveRepository) Put(ctx context.Context, req *approval.LeaveRequest) error {
	stepsJSON, err := json.Marshal(req.Steps)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal approval steps")
	}
	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		return errors.InvalidInput("start", "invalid date format, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		return errors.InvalidInput("end", "invalid date format, expected YYYY-MM-DD")
	}

	query := `
		INSERT INTO leave_requests
		    (id, requester, requester_roles, department,
		     category, reason, start_date, end_date, days,
		     steps, created_at)
		VALUES ($1, $2, $3, $4,
		        $5, $6, $7, $8, $9,
		        $10, $11)
		ON CONFLICT (id) DO UPDATE
		SET requester       = EXCLUDED.requester,
		    requester_roles = EXCLUDED.requester_roles,
		    department      = EXCLUDED.department,
		    category        = EXCLUDED.category,
		    reason          = EXCLUDED.reason,
		    start_date      = EXCLUDED.start_date,
		    end_date        = EXCLUDED.end_date,
		    days            = EXCLUDED.days,
		    steps           = EXCLUDED.steps,
		    created_at      = EXCLUDED.created_at
	`

	_, err = r.db.Exec(ctx, query,
		req.ID,
		req.Requester,
		req.RequesterRoles.Strings(),
		req.Department,
		req.Category,
		req.Reason,
		start,
		end,
		req.Days,
		stepsJSON,
		req.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to store leave request")
	}
	return nil
}

// GetByID returns a request or approval.ErrRequestNotFound.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*approval.LeaveRequest, error) {
	query := `
		SELECT id, requester, requester_roles, department,
		       category, reason, start_date, end_date, days,
		       steps, created_at
		FROM leave_requests
		WHERE id = $1
	`

	req, err := r.scanRequest(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, approval.ErrRequestNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to get leave request")
	}
	return req, nil
}

// ListAll returns every request, newest first.
func (r *LeaveRepository) ListAll(ctx context.Context) ([]*approval.LeaveRequest, error) {
	query := `
		SELECT id, requester, requester_roles, department,
		       category, reason, start_date, end_date, days,
		       steps, created_at
		FROM leave_requests
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to list leave requests")
	}
	defer rows.Close()

	var out []*approval.LeaveRequest
	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan leave request")
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to list leave requests")
	}
	return out, nil
}

// ── scan helper ───────────────────────────────────────────────────────────────

type requestScanner interface {
	Scan(dest ...any) error
}

func (r *LeaveRepository) scanRequest(row requestScanner) (*approval.LeaveRequest, error) {
	var (
		req       approval.LeaveRequest
		roles     []string
		start     time.Time
		end       time.Time
		stepsJSON []byte
	)
	err := row.Scan(
		&req.ID,
		&req.Requester,
		&roles,
		&req.Department,
		&req.Category,
		&req.Reason,
		&start,
		&end,
		&req.Days,
		&stepsJSON,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.RequesterRoles, err = approval.ParseRoles(roles)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stepsJSON, &req.Steps); err != nil {
		return nil, err
	}
	req.Start = start.Format(dateLayout)
	req.End = end.Format(dateLayout)
	return &req, nil
}
