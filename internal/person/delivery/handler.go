package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brf-backend/internal/person/usecase"
)

// PersonHandler handles people CRUD and device-token registration.
type PersonHandler struct {
	personUsecase usecase.PersonUsecase
}

func NewPersonHandler(personUsecase usecase.PersonUsecase) *PersonHandler {
	return &PersonHandler{personUsecase: personUsecase}
}

type personRequest struct {
	Name string `json:"name" binding:"required"`
}

type deviceRequest struct {
	Token    string  `json:"token" binding:"required"`
	PersonID *string `json:"personId"`
	Platform string  `json:"platform"`
}

// List returns every person.
// GET /api/people
func (h *PersonHandler) List(c *gin.Context) {
	people, err := h.personUsecase.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": people})
}

// Create adds a person.
// POST /api/people
func (h *PersonHandler) Create(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	person, err := h.personUsecase.Create(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

// Rename updates a person's name.
// PUT /api/people/:id
func (h *PersonHandler) Rename(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	person, err := h.personUsecase.Rename(c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// Delete removes a person and cascades to their tasks.
// DELETE /api/people/:id
func (h *PersonHandler) Delete(c *gin.Context) {
	if err := h.personUsecase.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Person deleted"})
}

// RegisterDevice stores an FCM token, optionally bound to a person. Open to
// share-link visitors, so it is unauthenticated.
// POST /api/devices
func (h *PersonHandler) RegisterDevice(c *gin.Context) {
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.personUsecase.RegisterDevice(req.Token, req.Platform, req.PersonID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device registered"})
}

// UnregisterDevice drops an FCM token.
// DELETE /api/devices/:token
func (h *PersonHandler) UnregisterDevice(c *gin.Context) {
	if err := h.personUsecase.UnregisterDevice(c.Param("token")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device unregistered"})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
