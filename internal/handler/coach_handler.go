package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coachdesk/coachdesk-api/internal/models"
	"github.com/coachdesk/coachdesk-api/internal/service"
	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
	"github.com/coachdesk/coachdesk-api/pkg/response"
)

// CoachHandler wires coach services to HTTP routes.
type CoachHandler struct {
	coaches    *service.CoachService
	timetables *service.TimetableService
}

// NewCoachHandler constructs a new CoachHandler.
func NewCoachHandler(coaches *service.CoachService, timetables *service.TimetableService) *CoachHandler {
	return &CoachHandler{coaches: coaches, timetables: timetables}
}

// List godoc
// @Summary List coaches
// @Tags Coaches
// @Produce json
// @Param search query string false "Search by name/email"
// @Param skill query string false "Filter by skill"
// @Param active query bool false "Filter by active status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort field (full_name,email,created_at)"
// @Param order query string false "Sort order (asc/desc)"
// @Success 200 {object} response.Envelope
// @Router /coaches [get]
func (h *CoachHandler) List(c *gin.Context) {
	filter := models.CoachFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Skill:     strings.TrimSpace(c.Query("skill")),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if active := c.Query("active"); active != "" {
		switch strings.ToLower(active) {
		case "true":
			val := true
			filter.Active = &val
		case "false":
			val := false
			filter.Active = &val
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	coaches, pagination, err := h.coaches.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coaches, pagination)
}

// Get godoc
// @Summary Get coach detail
// @Tags Coaches
// @Produce json
// @Param id path string true "Coach ID"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id} [get]
func (h *CoachHandler) Get(c *gin.Context) {
	coach, err := h.coaches.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coach, nil)
}

// Create godoc
// @Summary Create coach
// @Tags Coaches
// @Accept json
// @Produce json
// @Param payload body service.CreateCoachRequest true "Coach payload"
// @Success 201 {object} response.Envelope
// @Router /coaches [post]
func (h *CoachHandler) Create(c *gin.Context) {
	var req service.CreateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid coach payload"))
		return
	}
	coach, err := h.coaches.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, coach)
}

// Update godoc
// @Summary Update coach
// @Tags Coaches
// @Accept json
// @Produce json
// @Param id path string true "Coach ID"
// @Param payload body service.UpdateCoachRequest true "Coach payload"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id} [put]
func (h *CoachHandler) Update(c *gin.Context) {
	var req service.UpdateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid coach payload"))
		return
	}
	coach, err := h.coaches.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coach, nil)
}

// Delete godoc
// @Summary Deactivate coach
// @Tags Coaches
// @Param id path string true "Coach ID"
// @Success 204
// @Router /coaches/{id} [delete]
func (h *CoachHandler) Delete(c *gin.Context) {
	if err := h.coaches.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddSkill godoc
// @Summary Add coach skill
// @Tags Coach Skills
// @Accept json
// @Produce json
// @Param id path string true "Coach ID"
// @Param payload body service.SkillRequest true "Skill payload"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id}/skills [post]
func (h *CoachHandler) AddSkill(c *gin.Context) {
	var req service.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid skill payload"))
		return
	}
	coach, err := h.coaches.AddSkill(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coach, nil)
}

// RemoveSkill godoc
// @Summary Remove coach skill
// @Tags Coach Skills
// @Produce json
// @Param id path string true "Coach ID"
// @Param skill path string true "Skill"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id}/skills/{skill} [delete]
func (h *CoachHandler) RemoveSkill(c *gin.Context) {
	coach, err := h.coaches.RemoveSkill(c.Request.Context(), c.Param("id"), c.Param("skill"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coach, nil)
}

// UpdateSkills godoc
// @Summary Replace coach skills
// @Tags Coach Skills
// @Accept json
// @Produce json
// @Param id path string true "Coach ID"
// @Param payload body service.UpdateSkillsRequest true "Skills payload"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id}/skills [put]
func (h *CoachHandler) UpdateSkills(c *gin.Context) {
	var req service.UpdateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid skills payload"))
		return
	}
	coach, err := h.coaches.UpdateSkills(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, coach, nil)
}

// Timetable godoc
// @Summary Get coach timetable
// @Tags Coach Timetable
// @Produce json
// @Param id path string true "Coach ID"
// @Success 200 {object} response.Envelope
// @Router /coaches/{id}/timetable [get]
func (h *CoachHandler) Timetable(c *gin.Context) {
	entries, cached, err := h.timetables.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if cached {
		c.Header("X-Cache", "HIT")
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// ExportTimetable godoc
// @Summary Export coach timetable
// @Tags Coach Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Coach ID"
// @Param format query string false "Export format (csv,pdf)"
// @Success 200
// @Router /coaches/{id}/timetable/export [get]
func (h *CoachHandler) ExportTimetable(c *gin.Context) {
	content, contentType, err := h.timetables.Export(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, content)
}
