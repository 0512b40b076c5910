package stream

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	persondomain "brf-backend/internal/person/domain"
	taskdomain "brf-backend/internal/task/domain"
)

type fakePersonRepo struct {
	people []persondomain.Person
}

func (r *fakePersonRepo) Create(person *persondomain.Person) error {
	r.people = append(r.people, *person)
	return nil
}

func (r *fakePersonRepo) FindByID(id string) (*persondomain.Person, error) {
	for _, person := range r.people {
		if person.ID == id {
			return &person, nil
		}
	}
	return nil, nil
}

func (r *fakePersonRepo) FindAll() ([]persondomain.Person, error) {
	return r.people, nil
}

func (r *fakePersonRepo) Update(person *persondomain.Person) error { return nil }
func (r *fakePersonRepo) Delete(id string) error                   { return nil }

type fakeTaskRepo struct {
	tasks []taskdomain.Task
}

func (r *fakeTaskRepo) Create(task *taskdomain.Task) error {
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *fakeTaskRepo) FindByID(id string) (*taskdomain.Task, error) {
	for _, task := range r.tasks {
		if task.ID == id {
			return &task, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindAll(personID *string) ([]taskdomain.Task, error) {
	return r.tasks, nil
}

func (r *fakeTaskRepo) Update(task *taskdomain.Task) error                          { return nil }
func (r *fakeTaskRepo) Delete(id string) error                                      { return nil }
func (r *fakeTaskRepo) UpdateFields(id string, fields map[string]interface{}) error { return nil }

func TestPublishBroadcastsFullSnapshot(t *testing.T) {
	m := NewManager()
	go m.Run()
	ch := make(client, 1)
	m.register <- ch

	people := &fakePersonRepo{people: []persondomain.Person{{ID: "p1", Name: "דנה"}}}
	tasks := &fakeTaskRepo{tasks: []taskdomain.Task{{ID: "t1", Title: "judo"}, {ID: "t2", Title: "piano"}}}
	publisher := NewPublisher(people, tasks, m)

	publisher.Publish()

	payload := string(recv(t, ch))
	require.True(t, strings.HasPrefix(payload, "event: snapshot\ndata: "))
	require.True(t, strings.HasSuffix(payload, "\n\n"))

	var snapshot Snapshot
	data := strings.TrimSuffix(strings.TrimPrefix(payload, "event: snapshot\ndata: "), "\n\n")
	require.NoError(t, json.Unmarshal([]byte(data), &snapshot))
	require.Len(t, snapshot.People, 1)
	assert.Equal(t, "דנה", snapshot.People[0].Name)
	require.Len(t, snapshot.Tasks, 2)
	assert.Equal(t, []string{"t1", "t2"}, []string{snapshot.Tasks[0].ID, snapshot.Tasks[1].ID})
}
