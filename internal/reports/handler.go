package reports

import (
	"bytes"
	"context"
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
	reports := rg.Group("/reports")
	{
		reports.GET("/projects/:id", h.ExecutiveReport)
		reports.GET("/projects/:id/summary", h.SummaryReport)
		reports.GET("/projects/:id/certificate", h.Certificate)
		reports.GET("/projects/:id/pdf", h.AssessmentPDF)
		reports.GET("/portfolio.xlsx", h.PortfolioWorkbook)
	}
}

func (h *Handler) ExecutiveReport(c *gin.Context) {
	h.renderMarkdown(c, h.service.ExecutiveReport)
}

func (h *Handler) SummaryReport(c *gin.Context) {
	h.renderMarkdown(c, h.service.SummaryReport)
}

func (h *Handler) Certificate(c *gin.Context) {
	h.renderMarkdown(c, h.service.Certificate)
}

func (h *Handler) AssessmentPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var buf bytes.Buffer
	if err := h.service.AssessmentPDF(c.Request.Context(), id, &buf); err != nil {
		h.renderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assessment.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *Handler) PortfolioWorkbook(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.PortfolioWorkbook(c.Request.Context(), &buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="portfolio.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) renderMarkdown(c *gin.Context, generate func(context.Context, uuid.UUID) (string, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	document, err := generate(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(document))
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no assessment found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
