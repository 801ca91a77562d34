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

// CourseHandler wires course services to HTTP routes.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs a new CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param search query string false "Search by title"
// @Param confirmed query bool false "Filter by confirmation state"
// @Param coach_id query string false "Filter by assigned coach"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort field (title,start_date,created_at)"
// @Param order query string false "Sort order (asc/desc)"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	filter := models.CourseFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		CoachID:   strings.TrimSpace(c.Query("coach_id")),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if confirmed := c.Query("confirmed"); confirmed != "" {
		switch strings.ToLower(confirmed) {
		case "true":
			val := true
			filter.Confirmed = &val
		case "false":
			val := false
			filter.Confirmed = &val
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	courses, pagination, err := h.courses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination)
}

// Get godoc
// @Summary Get course detail
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// UpdateTitle godoc
// @Summary Rename course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.UpdateCourseTitleRequest true "Title payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/title [patch]
func (h *CourseHandler) UpdateTitle(c *gin.Context) {
	var req service.UpdateCourseTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid title payload"))
		return
	}
	course, err := h.courses.UpdateTitle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// AddSkill godoc
// @Summary Add required skill
// @Tags Course Skills
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.SkillRequest true "Skill payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/skills [post]
func (h *CourseHandler) AddSkill(c *gin.Context) {
	var req service.SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid skill payload"))
		return
	}
	course, err := h.courses.AddSkill(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// RemoveSkill godoc
// @Summary Remove required skill
// @Tags Course Skills
// @Produce json
// @Param id path string true "Course ID"
// @Param skill path string true "Skill"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/skills/{skill} [delete]
func (h *CourseHandler) RemoveSkill(c *gin.Context) {
	course, err := h.courses.RemoveSkill(c.Request.Context(), c.Param("id"), c.Param("skill"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// UpdateSkills godoc
// @Summary Replace required skills
// @Tags Course Skills
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.UpdateSkillsRequest true "Skills payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/skills [put]
func (h *CourseHandler) UpdateSkills(c *gin.Context) {
	var req service.UpdateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid skills payload"))
		return
	}
	course, err := h.courses.UpdateSkills(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// AddTimeSlot godoc
// @Summary Add weekly time slot
// @Tags Course Schedule
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.TimeSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/slots [post]
func (h *CourseHandler) AddTimeSlot(c *gin.Context) {
	var req service.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time slot payload"))
		return
	}
	course, err := h.courses.AddTimeSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// RemoveTimeSlot godoc
// @Summary Remove weekly time slot
// @Tags Course Schedule
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.TimeSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/slots/remove [post]
func (h *CourseHandler) RemoveTimeSlot(c *gin.Context) {
	var req service.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time slot payload"))
		return
	}
	course, err := h.courses.RemoveTimeSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// UpdateTimeSlots godoc
// @Summary Replace weekly schedule
// @Tags Course Schedule
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.UpdateTimeSlotsRequest true "Slots payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/slots [put]
func (h *CourseHandler) UpdateTimeSlots(c *gin.Context) {
	var req service.UpdateTimeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time slots payload"))
		return
	}
	course, err := h.courses.UpdateTimeSlots(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Confirm godoc
// @Summary Confirm course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/confirm [post]
func (h *CourseHandler) Confirm(c *gin.Context) {
	course, err := h.courses.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// AssignCoach godoc
// @Summary Assign coach to course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AssignCoachRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/assign [post]
func (h *CourseHandler) AssignCoach(c *gin.Context) {
	var req service.AssignCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	course, err := h.courses.AssignCoach(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}
