package stream

import (
	persondomain "brf-backend/internal/person/domain"
	personrepo "brf-backend/internal/person/repository"
	taskdomain "brf-backend/internal/task/domain"
	taskrepo "brf-backend/internal/task/repository"
)

// Snapshot is the full board state pushed to subscribers on every change.
type Snapshot struct {
	People []persondomain.Person `json:"people"`
	Tasks  []taskdomain.Task     `json:"tasks"`
}

// Publisher loads the current board and broadcasts it as a snapshot event.
type Publisher struct {
	people  personrepo.PersonRepository
	tasks   taskrepo.TaskRepository
	manager *Manager
}

func NewPublisher(people personrepo.PersonRepository, tasks taskrepo.TaskRepository, manager *Manager) *Publisher {
	return &Publisher{people: people, tasks: tasks, manager: manager}
}

// Publish broadcasts the latest snapshot. Failures are logged and dropped:
// the next mutation publishes again.
func (p *Publisher) Publish() {
	people, err := p.people.FindAll()
	if err != nil {
		log.WithError(err).Error("load people for snapshot")
		return
	}
	tasks, err := p.tasks.FindAll(nil)
	if err != nil {
		log.WithError(err).Error("load tasks for snapshot")
		return
	}
	p.manager.Broadcast("snapshot", Snapshot{People: people, Tasks: tasks})
}
