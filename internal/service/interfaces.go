package service

import (
	"context"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// LeaveRepositoryInterface is the record store for leave requests. Put is a
// full replace by id; the last write wins.
type LeaveRepositoryInterface interface {
	ListAll(ctx context.Context) ([]*approval.LeaveRequest, error)
	GetByID(ctx context.Context, id string) (*approval.LeaveRequest, error)
	Put(ctx context.Context, req *approval.LeaveRequest) error
}

// DirectoryInterface resolves, lists and registers users.
type DirectoryInterface interface {
	approval.Directory
	Create(ctx context.Context, user *approval.User) error
	List(ctx context.Context) ([]*approval.User, error)
}

// EventPublisher announces workflow changes. Implementations must not block
// or fail the calling operation.
type EventPublisher interface {
	PublishLeaveEvent(ctx context.Context, eventType string, req *approval.LeaveRequest, actor string, role approval.Role)
}

type noopPublisher struct{}

func (noopPublisher) PublishLeaveEvent(context.Context, string, *approval.LeaveRequest, string, approval.Role) {
}
