package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	personUsecase "brf-backend/internal/person/usecase"
	taskUsecase "brf-backend/internal/task/usecase"
	"brf-backend/internal/week"
)

// BoardHandler serves the read-only projections: the week grid and the
// shareable per-person view.
type BoardHandler struct {
	people personUsecase.PersonUsecase
	tasks  taskUsecase.TaskUsecase
	loc    *time.Location
}

func NewBoardHandler(people personUsecase.PersonUsecase, tasks taskUsecase.TaskUsecase, loc *time.Location) *BoardHandler {
	return &BoardHandler{people: people, tasks: tasks, loc: loc}
}

// Week returns the 7-day × 4-window grid for the current week.
// GET /api/week
func (h *BoardHandler) Week(c *gin.Context) {
	people, err := h.people.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tasks, err := h.tasks.List(nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, week.BuildGrid(people, tasks, time.Now(), h.loc))
}

// Share returns one person's tasks and agenda. Possession of the person id
// is the only access control.
// GET /api/share/:personId
func (h *BoardHandler) Share(c *gin.Context) {
	personID := c.Param("personId")

	person, err := h.people.Get(personID)
	if err != nil {
		if errors.Is(err, personUsecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.tasks.List(&personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"person": person,
		"tasks":  tasks,
		"agenda": week.BuildAgenda(tasks, time.Now(), h.loc),
	})
}
