package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/pesio-ai/be-hr-leave/internal/approval"
)

// MemoryLeaveRepository keeps leave requests in process memory. Records are
// copied on the way in and out, so callers mutate only their own copy until
// they Put it back.
type MemoryLeaveRepository struct {
	mu       sync.RWMutex
	requests map[string]*approval.LeaveRequest
}

// NewMemoryLeaveRepository creates an empty repository.
func NewMemoryLeaveRepository() *MemoryLeaveRepository {
	return &MemoryLeaveRepository{requests: make(map[string]*approval.LeaveRequest)}
}

func (r *MemoryLeaveRepository) Put(ctx context.Context, req *approval.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = req.Clone()
	return nil
}

func (r *MemoryLeaveRepository) GetByID(ctx context.Context, id string) (*approval.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, approval.ErrRequestNotFound
	}
	return req.Clone(), nil
}

// ListAll returns every request, newest first.
func (r *MemoryLeaveRepository) ListAll(ctx context.Context) ([]*approval.LeaveRequest, error) {
	r.mu.RLock()
	out := make([]*approval.LeaveRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, req.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
