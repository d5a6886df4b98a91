package directory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
	"github.com/pesio-ai/be-hr-leave/internal/database"
	"github.com/pesio-ai/be-hr-leave/internal/errors"
)

const uniqueViolation = "23505"

// PostgresDirectory reads directory users from the directory_users table.
type PostgresDirectory struct {
	db *database.DB
}

// NewPostgresDirectory creates a new PostgresDirectory.
func NewPostgresDirectory(db *database.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

// FindUser returns a user by username.
func (d *PostgresDirectory) FindUser(ctx context.Context, username string) (*approval.User, error) {
	query := `
		SELECT username, roles, department, mentor, supervisor
		FROM directory_users
		WHERE username = $1
	`

	user, err := scanUser(d.db.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, approval.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to get directory user")
	}
	return user, nil
}

// FindMentorInDepartment returns the first mentor (by registration time) of
// a department, or "" when none exists.
func (d *PostgresDirectory) FindMentorInDepartment(ctx context.Context, department string) (string, error) {
	query := `
		SELECT username
		FROM directory_users
		WHERE department = $1
		  AND 'mentor' = ANY(roles)
		ORDER BY created_at ASC, username ASC
		LIMIT 1
	`

	var username string
	err := d.db.QueryRow(ctx, query, department).Scan(&username)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to find department mentor")
	}
	return username, nil
}

// Create inserts a new user.
func (d *PostgresDirectory) Create(ctx context.Context, user *approval.User) error {
	query := `
		INSERT INTO directory_users (username, roles, department, mentor, supervisor)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := d.db.Exec(ctx, query,
		user.Username,
		user.Roles.Strings(),
		user.Department,
		user.Mentor,
		user.Supervisor,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.New(errors.ErrCodeConflict, "user '"+user.Username+"' already exists")
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create directory user")
	}
	return nil
}

// Seed inserts users that are not yet present.
func (d *PostgresDirectory) Seed(ctx context.Context, users []*approval.User) error {
	query := `
		INSERT INTO directory_users (username, roles, department, mentor, supervisor)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO NOTHING
	`

	return d.db.InTransaction(ctx, func(tx pgx.Tx) error {
		for _, u := range users {
			if _, err := tx.Exec(ctx, query, u.Username, u.Roles.Strings(), u.Department, u.Mentor, u.Supervisor); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to seed directory user")
			}
		}
		return nil
	})
}

// List returns all users in registration order.
func (d *PostgresDirectory) List(ctx context.Context) ([]*approval.User, error) {
	query := `
		SELECT username, roles, department, mentor, supervisor
		FROM directory_users
		ORDER BY created_at ASC, username ASC
	`

	rows, err := d.db.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to list directory users")
	}
	defer rows.Close()

	var users []*approval.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan directory user")
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type userScanner interface {
	Scan(dest ...any) error
}

func scanUser(row userScanner) (*approval.User, error) {
	var (
		u     approval.User
		roles []string
	)
	if err := row.Scan(&u.Username, &roles, &u.Department, &u.Mentor, &u.Supervisor); err != nil {
		return nil, err
	}
	parsed, err := approval.ParseRoles(roles)
	if err != nil {
		return nil, err
	}
	u.Roles = parsed
	return &u, nil
}
