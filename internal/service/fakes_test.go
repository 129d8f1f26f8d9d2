package service_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/taskhive/taskhive/internal/domain"
)

// fakeTaskStore is an in-memory TaskStore with the same atomic-per-call
// semantics as the SQL-backed repository.
type fakeTaskStore struct {
	tasks map[string]*domain.Task
	seq   int
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string]*domain.Task)}
}

func (s *fakeTaskStore) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	s.seq++
	copied := *task
	copied.ID = fmt.Sprintf("task-%d", s.seq)
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	s.tasks[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (s *fakeTaskStore) Update(_ context.Context, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.AssignedToSet {
		task.AssignedToID = patch.AssignedToID
	}
	task.UpdatedAt = time.Now()
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) Delete(_ context.Context, taskID string) error {
	if _, ok := s.tasks[taskID]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

var priorityRank = map[domain.TaskPriority]int{
	domain.TaskPriorityUrgent: 1,
	domain.TaskPriorityHigh:   2,
	domain.TaskPriorityMedium: 3,
	domain.TaskPriorityLow:    4,
}

func (s *fakeTaskStore) List(_ context.Context, filters domain.TaskFilters, actorID string) ([]*domain.Task, error) {
	var result []*domain.Task
	for _, task := range s.tasks {
		if !task.IsCreatedBy(actorID) && !task.IsAssignedTo(actorID) {
			continue
		}
		if filters.Status != nil && task.Status != *filters.Status {
			continue
		}
		if filters.Priority != nil && task.Priority != *filters.Priority {
			continue
		}
		if filters.AssignedTo != nil {
			switch *filters.AssignedTo {
			case domain.AssignedToMe:
				if !task.IsAssignedTo(actorID) {
					continue
				}
			case domain.AssignedToOthers:
				if task.AssignedToID == nil || *task.AssignedToID == actorID {
					continue
				}
			}
		}
		copied := *task
		result = append(result, &copied)
	}

	sort.SliceStable(result, func(i, j int) bool {
		var less bool
		switch filters.SortBy {
		case domain.TaskSortPriority:
			less = priorityRank[result[i].Priority] < priorityRank[result[j].Priority]
		case domain.TaskSortCreatedAt:
			less = result[i].CreatedAt.Before(result[j].CreatedAt)
		default:
			less = result[i].DueDate.Before(result[j].DueDate)
		}
		if filters.SortDesc {
			return !less
		}
		return less
	})

	return result, nil
}

// fakeActivityStore is an in-memory append-only ActivityStore.
type fakeActivityStore struct {
	byTask map[string][]*domain.Activity
	seq    int
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{byTask: make(map[string][]*domain.Activity)}
}

func (s *fakeActivityStore) Append(_ context.Context, activity *domain.Activity) error {
	s.seq++
	copied := *activity
	copied.ID = fmt.Sprintf("activity-%d", s.seq)
	copied.CreatedAt = time.Now()
	s.byTask[copied.TaskID] = append(s.byTask[copied.TaskID], &copied)
	return nil
}

func (s *fakeActivityStore) ListByTask(_ context.Context, taskID string) ([]*domain.Activity, error) {
	stored := s.byTask[taskID]
	// Newest first, matching the repository's ordering.
	result := make([]*domain.Activity, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		copied := *stored[i]
		result = append(result, &copied)
	}
	return result, nil
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[string]*domain.User
	seq   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (s *fakeUserStore) addUser(id, email, name string) {
	s.users[id] = &domain.User{ID: id, Email: email, Name: name, CreatedAt: time.Now()}
}

func (s *fakeUserStore) GetByID(_ context.Context, userID string) (*domain.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.seq++
	copied := *user
	copied.ID = fmt.Sprintf("user-%d", s.seq)
	copied.CreatedAt = time.Now()
	s.users[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (s *fakeUserStore) ListAll(_ context.Context) ([]*domain.User, error) {
	result := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		copied := *user
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// sentEvent records one emitted event.
type sentEvent struct {
	UserID  string // empty for broadcasts
	Event   string
	Payload any
}

// fakeNotifier records every emitted event for assertions.
type fakeNotifier struct {
	broadcasts []sentEvent
	targeted   []sentEvent
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{}
}

func (n *fakeNotifier) BroadcastAll(event string, payload any) {
	n.broadcasts = append(n.broadcasts, sentEvent{Event: event, Payload: payload})
}

func (n *fakeNotifier) SendToUser(userID string, event string, payload any) {
	n.targeted = append(n.targeted, sentEvent{UserID: userID, Event: event, Payload: payload})
}

func (n *fakeNotifier) broadcastsOf(event string) []sentEvent {
	var result []sentEvent
	for _, e := range n.broadcasts {
		if e.Event == event {
			result = append(result, e)
		}
	}
	return result
}

func (n *fakeNotifier) targetedTo(userID string) []sentEvent {
	var result []sentEvent
	for _, e := range n.targeted {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result
}
