package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts all API routes onto the given group.
func RegisterRoutes(api *gin.RouterGroup, coaches *CoachHandler, courses *CourseHandler) {
	api.GET("/coaches", coaches.List)
	api.POST("/coaches", coaches.Create)
	api.GET("/coaches/:id", coaches.Get)
	api.PUT("/coaches/:id", coaches.Update)
	api.DELETE("/coaches/:id", coaches.Delete)
	api.POST("/coaches/:id/skills", coaches.AddSkill)
	api.PUT("/coaches/:id/skills", coaches.UpdateSkills)
	api.DELETE("/coaches/:id/skills/:skill", coaches.RemoveSkill)
	api.GET("/coaches/:id/timetable", coaches.Timetable)
	api.GET("/coaches/:id/timetable/export", coaches.ExportTimetable)

	api.GET("/courses", courses.List)
	api.POST("/courses", courses.Create)
	api.GET("/courses/:id", courses.Get)
	api.PATCH("/courses/:id/title", courses.UpdateTitle)
	api.POST("/courses/:id/skills", courses.AddSkill)
	api.PUT("/courses/:id/skills", courses.UpdateSkills)
	api.DELETE("/courses/:id/skills/:skill", courses.RemoveSkill)
	api.POST("/courses/:id/slots", courses.AddTimeSlot)
	api.PUT("/courses/:id/slots", courses.UpdateTimeSlots)
	api.POST("/courses/:id/slots/remove", courses.RemoveTimeSlot)
	api.POST("/courses/:id/confirm", courses.Confirm)
	api.POST("/courses/:id/assign", courses.AssignCoach)
}
