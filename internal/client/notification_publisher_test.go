package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
)

func TestPendingRecipients(t *testing.T) {
	mentor, supervisor := "mentor_lee", "sup_it"
	req := &approval.LeaveRequest{
		ID: "leave-1",
		Steps: []approval.ApprovalStep{
			{Role: approval.RoleMentor, Actor: &mentor, Status: approval.StepApproved},
			{Role: approval.RoleSupervisor, Actor: &supervisor, Status: approval.StepPending},
			{Role: approval.RoleAdmin, Status: approval.StepPending},
		},
	}
	assert.Equal(t, []string{"sup_it"}, PendingRecipients(req))

	req.Steps[1].Status = approval.StepRejected
	assert.Empty(t, PendingRecipients(req))
}

func TestNotificationPublisher_NilSafe(t *testing.T) {
	var p *NotificationPublisher
	assert.NotPanics(t, func() {
		p.PublishLeaveEvent(context.Background(), EventLeaveSubmitted, &approval.LeaveRequest{ID: "x"}, "alice", "")
		p.Close()
	})
}
