package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brf-backend/internal/task/domain"
)

type fakeTaskRepo struct {
	mu      sync.Mutex
	tasks   map[string]domain.Task
	patched map[string]map[string]interface{}
}

func newFakeTaskRepo(tasks ...domain.Task) *fakeTaskRepo {
	repo := &fakeTaskRepo{
		tasks:   make(map[string]domain.Task),
		patched: make(map[string]map[string]interface{}),
	}
	for _, task := range tasks {
		repo.tasks[task.ID] = task
	}
	return repo
}

func (r *fakeTaskRepo) Create(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) FindByID(id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task, ok := r.tasks[id]; ok {
		return &task, nil
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindAll(personID *string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, task := range r.tasks {
		if personID == nil || (task.PersonID != nil && *task.PersonID == *personID) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) UpdateFields(id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patched[id] = fields
	return nil
}

func (r *fakeTaskRepo) patchedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.patched))
	for id := range r.patched {
		ids = append(ids, id)
	}
	return ids
}

type fakeNotifier struct {
	mu      sync.Mutex
	enabled bool
	sent    []string
}

func (n *fakeNotifier) Enabled() bool { return n.enabled }

func (n *fakeNotifier) Send(_ context.Context, task domain.Task) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, task.ID)
	return nil
}

func (n *fakeNotifier) sentIDs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sent...)
}

func TestRunPassDispatchesAndPatches(t *testing.T) {
	due := ts("2024-01-01T10:00:00Z")
	repo := newFakeTaskRepo(domain.Task{
		ID:        "t1",
		Title:     "swim class",
		Datetime:  &due,
		Recurring: domain.RecurrenceWeekly,
	})
	notifier := &fakeNotifier{enabled: true}
	scheduler := NewScheduler(repo, notifier, time.Minute, time.UTC)

	scheduler.RunPass(ts("2024-01-01T10:00:30Z"))

	require.Eventually(t, func() bool {
		return len(notifier.sentIDs()) == 1 && len(repo.patchedIDs()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"t1"}, notifier.sentIDs())
	assert.Equal(t, []string{"t1"}, repo.patchedIDs())
}

func TestRunPassNotifierDisabled(t *testing.T) {
	due := ts("2024-01-01T10:00:00Z")
	repo := newFakeTaskRepo(domain.Task{ID: "t1", Datetime: &due, Recurring: domain.RecurrenceDaily})
	notifier := &fakeNotifier{enabled: false}
	scheduler := NewScheduler(repo, notifier, time.Minute, time.UTC)

	scheduler.RunPass(ts("2024-01-01T10:00:30Z"))

	// Rollover is still persisted even though no notification goes out.
	require.Eventually(t, func() bool {
		return len(repo.patchedIDs()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, notifier.sentIDs())
}

func TestEverySpecKeepsSubMinuteIntervals(t *testing.T) {
	tests := []struct {
		interval time.Duration
		want     string
	}{
		{time.Minute, "@every 1m0s"},
		{90 * time.Second, "@every 1m30s"},
		{1500 * time.Millisecond, "@every 1.5s"},
		{500 * time.Millisecond, "@every 500ms"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, everySpec(tt.interval))
	}
}

func TestPokeCoalesces(t *testing.T) {
	scheduler := NewScheduler(newFakeTaskRepo(), &fakeNotifier{}, time.Minute, time.UTC)

	// Must never block, no matter how many mutations land between passes.
	for i := 0; i < 100; i++ {
		scheduler.Poke()
	}
}
