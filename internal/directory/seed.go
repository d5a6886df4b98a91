package directory

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
)

type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	Username   string   `yaml:"username"`
	Roles      []string `yaml:"roles"`
	Department string   `yaml:"department"`
	Mentor     string   `yaml:"mentor"`
	Supervisor string   `yaml:"supervisor"`
}

// LoadFile reads a YAML seed file of directory users.
func LoadFile(path string) ([]*approval.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory seed: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML. Every invalid entry is reported.
func Parse(data []byte) ([]*approval.User, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse directory seed: %w", err)
	}

	var (
		users []*approval.User
		errs  error
		seen  = make(map[string]bool)
	)
	for i, entry := range file.Users {
		user, err := entry.toUser()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("users[%d]: %w", i, err))
			continue
		}
		if seen[user.Username] {
			errs = multierr.Append(errs, fmt.Errorf("users[%d]: duplicate username %q", i, user.Username))
			continue
		}
		seen[user.Username] = true
		users = append(users, user)
	}
	if errs != nil {
		return nil, errs
	}
	return users, nil
}

func (s seedUser) toUser() (*approval.User, error) {
	if s.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	roles, err := approval.ParseRoles(s.Roles)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("user %q has no roles", s.Username)
	}
	return &approval.User{
		Username:   s.Username,
		Roles:      roles,
		Department: s.Department,
		Mentor:     optional(s.Mentor),
		Supervisor: optional(s.Supervisor),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SampleUsers is the built-in directory used when no seed file is given.
func SampleUsers() []*approval.User {
	return []*approval.User{
		{Username: "alice", Roles: approval.RoleSet{approval.RoleEmployee}, Department: "HR", Supervisor: optional("sup_hr")},
		{Username: "bob", Roles: approval.RoleSet{approval.RoleEmployee, approval.RoleIntern}, Department: "IT", Mentor: optional("mentor_lee"), Supervisor: optional("sup_it")},
		{Username: "carl", Roles: approval.RoleSet{approval.RoleEmployee, approval.RoleContract}, Department: "Maintenance", Supervisor: optional("sup_maint")},
		{Username: "mentor_lee", Roles: approval.RoleSet{approval.RoleMentor, approval.RoleEmployee}, Department: "IT"},
		{Username: "sup_it", Roles: approval.RoleSet{approval.RoleSupervisor, approval.RoleEmployee}, Department: "IT"},
		{Username: "sup_hr", Roles: approval.RoleSet{approval.RoleSupervisor, approval.RoleEmployee}, Department: "HR"},
		{Username: "admin", Roles: approval.RoleSet{approval.RoleAdmin}},
	}
}
