package directory

import (
	"context"
	"sync"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
	"github.com/pesio-ai/be-hr-leave/internal/errors"
)

// MemoryDirectory is an in-process user directory. Lookups that scan
// (department mentor) follow registration order.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]*approval.User
	order []string
}

// NewMemoryDirectory creates a directory pre-populated with users.
func NewMemoryDirectory(users ...*approval.User) *MemoryDirectory {
	d := &MemoryDirectory{users: make(map[string]*approval.User)}
	for _, u := range users {
		d.put(u)
	}
	return d
}

// FindUser returns a copy of the user or approval.ErrUserNotFound.
func (d *MemoryDirectory) FindUser(ctx context.Context, username string) (*approval.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[username]
	if !ok {
		return nil, approval.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// FindMentorInDepartment returns the first registered mentor of department.
func (d *MemoryDirectory) FindMentorInDepartment(ctx context.Context, department string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, name := range d.order {
		u := d.users[name]
		if u.Department == department && u.HasRole(approval.RoleMentor) {
			return u.Username, nil
		}
	}
	return "", nil
}

// Create registers a new user; usernames are unique.
func (d *MemoryDirectory) Create(ctx context.Context, user *approval.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.users[user.Username]; exists {
		return errors.New(errors.ErrCodeConflict, "user '"+user.Username+"' already exists")
	}
	d.put(user)
	return nil
}

// List returns all users in registration order.
func (d *MemoryDirectory) List(ctx context.Context) ([]*approval.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*approval.User, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, cloneUser(d.users[name]))
	}
	return out, nil
}

func (d *MemoryDirectory) put(u *approval.User) {
	if _, exists := d.users[u.Username]; !exists {
		d.order = append(d.order, u.Username)
	}
	d.users[u.Username] = cloneUser(u)
}

func cloneUser(u *approval.User) *approval.User {
	c := *u
	c.Roles = append(approval.RoleSet(nil), u.Roles...)
	if u.Mentor != nil {
		m := *u.Mentor
		c.Mentor = &m
	}
	if u.Supervisor != nil {
		s := *u.Supervisor
		c.Supervisor = &s
	}
	return &c
}
