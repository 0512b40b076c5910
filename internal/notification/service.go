package notification

import (
	"context"
	"strings"
	"time"

	persondomain "brf-backend/internal/person/domain"
	personrepo "brf-backend/internal/person/repository"
	taskdomain "brf-backend/internal/task/domain"
	"brf-backend/pkg/fcm"
	"brf-backend/pkg/logger"
)

var log = logger.Component("notification")

// Sender multicasts one push message and reports the tokens the platform
// rejected. *fcm.Client satisfies it.
type Sender interface {
	SendToDevices(ctx context.Context, tokens []string, msg fcm.Message) ([]string, error)
}

// Service delivers reminder pushes to the registered devices of the task's
// person (or to every device when the task is unassigned). A Service built
// with a nil sender reports Enabled() == false and the engine suppresses all
// notifications for the pass.
type Service struct {
	sender  Sender
	people  personrepo.PersonRepository
	devices personrepo.DeviceTokenRepository
	loc     *time.Location
}

func NewService(sender Sender, people personrepo.PersonRepository, devices personrepo.DeviceTokenRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{sender: sender, people: people, devices: devices, loc: loc}
}

func (s *Service) Enabled() bool {
	return s.sender != nil
}

// Send builds and multicasts one reminder. Best-effort: delivery is not
// confirmed and not retried; tokens FCM rejects are pruned.
func (s *Service) Send(ctx context.Context, task taskdomain.Task) error {
	if s.sender == nil {
		return nil
	}

	tokens, err := s.tokensFor(task)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		log.WithField("task", task.ID).Debug("no devices registered, skipping push")
		return nil
	}

	var person *persondomain.Person
	if task.PersonID != nil {
		person, _ = s.people.FindByID(*task.PersonID)
	}

	failed, err := s.sender.SendToDevices(ctx, tokens, s.buildMessage(task, person))
	if err != nil {
		return err
	}
	for _, token := range failed {
		if err := s.devices.Delete(token); err != nil {
			log.WithError(err).Warn("prune rejected device token")
		}
	}

	log.WithField("task", task.ID).WithField("devices", len(tokens)-len(failed)).Info("reminder sent")
	return nil
}

func (s *Service) tokensFor(task taskdomain.Task) ([]string, error) {
	var records []persondomain.DeviceToken
	var err error
	if task.PersonID != nil {
		records, err = s.devices.FindByPersonID(*task.PersonID)
	} else {
		records, err = s.devices.FindAll()
	}
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(records))
	for _, record := range records {
		tokens = append(tokens, record.Token)
	}
	return tokens, nil
}

func (s *Service) buildMessage(task taskdomain.Task, person *persondomain.Person) fcm.Message {
	title := "🔔 "
	if label := taskdomain.CategoryLabel(task.EffectiveCategory()); label != "" {
		title += label + " • "
	}
	title += task.Title

	var bodyParts []string
	if person != nil {
		bodyParts = append(bodyParts, "ל-"+person.Name)
	}
	if task.Datetime != nil {
		bodyParts = append(bodyParts, task.Datetime.In(s.loc).Format("02/01/2006 15:04"))
	}

	data := map[string]string{
		"type":    "task_reminder",
		"task_id": task.ID,
	}
	if task.PersonID != nil {
		data["person_id"] = *task.PersonID
	}

	return fcm.Message{
		Title: title,
		Body:  strings.Join(bodyParts, " | "),
		Data:  data,
	}
}
