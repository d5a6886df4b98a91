package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
	"github.com/pesio-ai/be-hr-leave/internal/errors"
)

func TestMemoryDirectory(t *testing.T) {
	ctx := context.Background()
	dir := NewMemoryDirectory(SampleUsers()...)

	bob, err := dir.FindUser(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, bob.HasRole(approval.RoleIntern))
	assert.Equal(t, "mentor_lee", *bob.Mentor)

	_, err = dir.FindUser(ctx, "nobody")
	assert.ErrorIs(t, err, approval.ErrUserNotFound)

	mentor, err := dir.FindMentorInDepartment(ctx, "IT")
	require.NoError(t, err)
	assert.Equal(t, "mentor_lee", mentor)

	mentor, err = dir.FindMentorInDepartment(ctx, "HR")
	require.NoError(t, err)
	assert.Empty(t, mentor)

	// returned users are copies
	bob.Roles[0] = approval.RoleAdmin
	again, _ := dir.FindUser(ctx, "bob")
	assert.Equal(t, approval.RoleEmployee, again.Roles[0])
}

func TestMemoryDirectory_Create(t *testing.T) {
	ctx := context.Background()
	dir := NewMemoryDirectory()

	first := &approval.User{Username: "m1", Roles: approval.RoleSet{approval.RoleMentor}, Department: "Ops"}
	second := &approval.User{Username: "m0", Roles: approval.RoleSet{approval.RoleMentor}, Department: "Ops"}
	require.NoError(t, dir.Create(ctx, first))
	require.NoError(t, dir.Create(ctx, second))

	err := dir.Create(ctx, first)
	assert.Equal(t, errors.ErrCodeConflict, errors.CodeOf(err))

	mentor, err := dir.FindMentorInDepartment(ctx, "Ops")
	require.NoError(t, err)
	assert.Equal(t, "m1", mentor, "registration order wins")

	users, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestParse(t *testing.T) {
	data := []byte(`
users:
  - username: dana
    roles: [employee, intern]
    department: Finance
    supervisor: sup_fin
  - username: sup_fin
    roles: [supervisor]
    department: Finance
`)
	users, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, approval.RoleSet{approval.RoleEmployee, approval.RoleIntern}, users[0].Roles)
	assert.Nil(t, users[0].Mentor)
	assert.Equal(t, "sup_fin", *users[0].Supervisor)
}

func TestParse_ReportsEveryInvalidEntry(t *testing.T) {
	data := []byte(`
users:
  - username: ""
    roles: [employee]
  - username: x
    roles: [wizard]
  - username: y
    roles: []
  - username: z
    roles: [admin]
  - username: z
    roles: [admin]
`)
	_, err := Parse(data)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "users[0]")
	assert.Contains(t, msg, "users[1]")
	assert.Contains(t, msg, "users[2]")
	assert.Contains(t, msg, "duplicate username")
}
