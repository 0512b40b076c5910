package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	persondomain "brf-backend/internal/person/domain"
	taskdomain "brf-backend/internal/task/domain"
	"brf-backend/pkg/fcm"
)

type fakeSender struct {
	tokens []string
	msg    fcm.Message
	reject []string
	calls  int
}

func (s *fakeSender) SendToDevices(_ context.Context, tokens []string, msg fcm.Message) ([]string, error) {
	s.calls++
	s.tokens = tokens
	s.msg = msg
	return s.reject, nil
}

type fakePersonRepo struct {
	people map[string]persondomain.Person
}

func (r *fakePersonRepo) Create(person *persondomain.Person) error {
	r.people[person.ID] = *person
	return nil
}

func (r *fakePersonRepo) FindByID(id string) (*persondomain.Person, error) {
	if person, ok := r.people[id]; ok {
		return &person, nil
	}
	return nil, nil
}

func (r *fakePersonRepo) FindAll() ([]persondomain.Person, error) {
	var out []persondomain.Person
	for _, person := range r.people {
		out = append(out, person)
	}
	return out, nil
}

func (r *fakePersonRepo) Update(person *persondomain.Person) error {
	r.people[person.ID] = *person
	return nil
}

func (r *fakePersonRepo) Delete(id string) error {
	delete(r.people, id)
	return nil
}

type fakeDeviceRepo struct {
	tokens map[string]persondomain.DeviceToken
}

func (r *fakeDeviceRepo) Save(token, platform string, personID *string) error {
	r.tokens[token] = persondomain.DeviceToken{Token: token, Platform: platform, PersonID: personID}
	return nil
}

func (r *fakeDeviceRepo) FindByPersonID(personID string) ([]persondomain.DeviceToken, error) {
	var out []persondomain.DeviceToken
	for _, dt := range r.tokens {
		if dt.PersonID != nil && *dt.PersonID == personID {
			out = append(out, dt)
		}
	}
	return out, nil
}

func (r *fakeDeviceRepo) FindAll() ([]persondomain.DeviceToken, error) {
	var out []persondomain.DeviceToken
	for _, dt := range r.tokens {
		out = append(out, dt)
	}
	return out, nil
}

func (r *fakeDeviceRepo) Delete(token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeDeviceRepo) DeleteByPersonID(personID string) error {
	for token, dt := range r.tokens {
		if dt.PersonID != nil && *dt.PersonID == personID {
			delete(r.tokens, token)
		}
	}
	return nil
}

func strp(v string) *string { return &v }

func tsp(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func newTestService(sender Sender) (*Service, *fakePersonRepo, *fakeDeviceRepo) {
	people := &fakePersonRepo{people: map[string]persondomain.Person{
		"p1": {ID: "p1", Name: "דנה"},
	}}
	devices := &fakeDeviceRepo{tokens: make(map[string]persondomain.DeviceToken)}
	return NewService(sender, people, devices, time.UTC), people, devices
}

func TestSendTargetsPersonTokens(t *testing.T) {
	sender := &fakeSender{}
	svc, _, devices := newTestService(sender)
	require.NoError(t, devices.Save("tok-p1", "web", strp("p1")))
	require.NoError(t, devices.Save("tok-other", "web", strp("p2")))
	require.NoError(t, devices.Save("tok-shared", "web", nil))

	err := svc.Send(context.Background(), taskdomain.Task{
		ID:       "t1",
		Title:    "judo",
		PersonID: strp("p1"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"tok-p1"}, sender.tokens)
}

func TestSendUnassignedTaskGoesToAllDevices(t *testing.T) {
	sender := &fakeSender{}
	svc, _, devices := newTestService(sender)
	require.NoError(t, devices.Save("tok-p1", "web", strp("p1")))
	require.NoError(t, devices.Save("tok-shared", "web", nil))

	err := svc.Send(context.Background(), taskdomain.Task{ID: "t1", Title: "shopping"})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tok-p1", "tok-shared"}, sender.tokens)
}

func TestSendSkipsWhenNoDevices(t *testing.T) {
	sender := &fakeSender{}
	svc, _, _ := newTestService(sender)

	err := svc.Send(context.Background(), taskdomain.Task{ID: "t1", PersonID: strp("p1")})

	require.NoError(t, err)
	assert.Zero(t, sender.calls)
}

func TestSendPrunesRejectedTokens(t *testing.T) {
	sender := &fakeSender{reject: []string{"tok-stale"}}
	svc, _, devices := newTestService(sender)
	require.NoError(t, devices.Save("tok-live", "web", strp("p1")))
	require.NoError(t, devices.Save("tok-stale", "web", strp("p1")))

	err := svc.Send(context.Background(), taskdomain.Task{ID: "t1", PersonID: strp("p1")})

	require.NoError(t, err)
	assert.NotContains(t, devices.tokens, "tok-stale")
	assert.Contains(t, devices.tokens, "tok-live")
}

func TestBuildMessageShape(t *testing.T) {
	sender := &fakeSender{}
	svc, _, devices := newTestService(sender)
	require.NoError(t, devices.Save("tok-p1", "web", strp("p1")))

	err := svc.Send(context.Background(), taskdomain.Task{
		ID:        "t1",
		Title:     "judo",
		PersonID:  strp("p1"),
		Datetime:  tsp("2024-01-10T17:30:00Z"),
		Recurring: taskdomain.RecurrenceWeekly,
	})

	require.NoError(t, err)
	assert.Equal(t, "🔔 חוג שבועי • judo", sender.msg.Title)
	assert.Equal(t, "ל-דנה | 10/01/2024 17:30", sender.msg.Body)
	assert.Equal(t, "task_reminder", sender.msg.Data["type"])
	assert.Equal(t, "t1", sender.msg.Data["task_id"])
	assert.Equal(t, "p1", sender.msg.Data["person_id"])
}

func TestBuildMessageUnassignedOmitsPerson(t *testing.T) {
	sender := &fakeSender{}
	svc, _, devices := newTestService(sender)
	require.NoError(t, devices.Save("tok", "web", nil))

	err := svc.Send(context.Background(), taskdomain.Task{
		ID:       "t1",
		Title:    "dentist",
		Datetime: tsp("2024-01-10T09:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, "🔔 dentist", sender.msg.Title)
	assert.Equal(t, "10/01/2024 09:00", sender.msg.Body)
	assert.NotContains(t, sender.msg.Data, "person_id")
}

func TestDisabledWithoutSender(t *testing.T) {
	svc, _, devices := newTestService(nil)
	require.NoError(t, devices.Save("tok", "web", nil))

	assert.False(t, svc.Enabled())
	// Send is a no-op rather than a panic when push is not configured.
	assert.NoError(t, svc.Send(context.Background(), taskdomain.Task{ID: "t1"}))
}

func TestEnabledWithSender(t *testing.T) {
	svc, _, _ := newTestService(&fakeSender{})
	assert.True(t, svc.Enabled())
}
