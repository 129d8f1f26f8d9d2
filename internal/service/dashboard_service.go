package service

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhive/taskhive/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the per-user summary view derived from store queries.
type Dashboard struct {
	TotalAssigned   int                         `json:"totalAssigned"`
	TotalCreated    int                         `json:"totalCreated"`
	OverdueTasks    []*domain.Task              `json:"overdueTasks"`
	TasksByStatus   map[domain.TaskStatus]int   `json:"tasksByStatus"`
	TasksByPriority map[domain.TaskPriority]int `json:"tasksByPriority"`
}

// DashboardService derives summary views from the store. It holds no state.
type DashboardService struct {
	store DashboardStore
	now   func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// GetDashboard computes the five sub-results concurrently and joins them
// before returning, so a failure in one section never leaves another
// half-written in the response.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var dashboard Dashboard

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.store.CountAssigned(ctx, userID)
		if err != nil {
			return fmt.Errorf("count assigned: %w", err)
		}
		dashboard.TotalAssigned = count
		return nil
	})

	g.Go(func() error {
		count, err := s.store.CountCreated(ctx, userID)
		if err != nil {
			return fmt.Errorf("count created: %w", err)
		}
		dashboard.TotalCreated = count
		return nil
	})

	g.Go(func() error {
		tasks, err := s.store.OverdueTasks(ctx, userID, s.now())
		if err != nil {
			return fmt.Errorf("overdue tasks: %w", err)
		}
		if tasks == nil {
			tasks = []*domain.Task{}
		}
		dashboard.OverdueTasks = tasks
		return nil
	})

	g.Go(func() error {
		counts, err := s.store.CountByStatus(ctx, userID)
		if err != nil {
			return fmt.Errorf("tasks by status: %w", err)
		}
		dashboard.TasksByStatus = counts
		return nil
	})

	g.Go(func() error {
		counts, err := s.store.CountByPriority(ctx, userID)
		if err != nil {
			return fmt.Errorf("tasks by priority: %w", err)
		}
		dashboard.TasksByPriority = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard, nil
}
