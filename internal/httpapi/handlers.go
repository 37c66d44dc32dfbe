package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nextgen-2026/futureforged"
	"github.com/nextgen-2026/futureforged/render"
)

// RoadmapGenerator is satisfied by *futureforged.Generator.
type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, category futureforged.StudentCategory, profile futureforged.StudentProfile) (*futureforged.Roadmap, error)
}

type roadmapRequest struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	YearOrGrade string `json:"yearOrGrade"`
	Goals       string `json:"goals"`
}

type RoadmapHandler struct {
	generator RoadmapGenerator
	timeout   time.Duration
}

func NewRoadmapHandler(generator RoadmapGenerator, timeout time.Duration) *RoadmapHandler {
	return &RoadmapHandler{generator: generator, timeout: timeout}
}

func (h *RoadmapHandler) generate(c *gin.Context) (futureforged.StudentProfile, *futureforged.Roadmap, bool) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, futureforged.NewInvalidProfileError(fmt.Sprintf("Invalid request body: %v", err)))
		return futureforged.StudentProfile{}, nil, false
	}

	category, err := futureforged.ParseStudentCategory(req.Category)
	if err != nil {
		RespondError(c, err)
		return futureforged.StudentProfile{}, nil, false
	}

	profile := futureforged.StudentProfile{
		Name:        req.Name,
		YearOrGrade: req.YearOrGrade,
		Goals:       req.Goals,
		Category:    category,
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	roadmap, err := h.generator.GenerateRoadmap(ctx, category, profile)
	if err != nil {
		RespondError(c, err)
		return profile, nil, false
	}
	return profile, roadmap, true
}

// CreateRoadmap handles POST /api/roadmaps.
func (h *RoadmapHandler) CreateRoadmap(c *gin.Context) {
	if _, roadmap, ok := h.generate(c); ok {
		RespondOK(c, roadmap)
	}
}

// ExportRoadmap handles POST /api/roadmaps/export with a text attachment.
func (h *RoadmapHandler) ExportRoadmap(c *gin.Context) {
	profile, roadmap, ok := h.generate(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.FileName(profile.Name)))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(render.Text(profile, roadmap)))
}

func Schema(c *gin.Context) {
	c.JSON(http.StatusOK, futureforged.RoadmapSchema())
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
