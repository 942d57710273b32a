package tokenization

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"impact-ledger/impact-portal-backend/internal/projects"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	tokens := rg.Group("/tokenization")
	{
		tokens.POST("/projects/:id", h.Tokenize)
		tokens.GET("/projects/:id/issuances", h.ListIssuances)
	}
}

func (h *Handler) Tokenize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	issuance, err := h.service.TokenizeProject(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, projects.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, ErrNotEligible):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "issuance": issuance})
		}
		return
	}

	c.JSON(http.StatusCreated, issuance)
}

func (h *Handler) ListIssuances(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	issuances, err := h.service.ListIssuances(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, issuances)
}
