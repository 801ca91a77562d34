package models

import "time"

// Course represents a stored course record.
type Course struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Confirmed bool      `db:"confirmed" json:"confirmed"`
	CoachID   *string   `db:"coach_id" json:"coach_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	RequiredSkills []string     `db:"-" json:"required_skills"`
	Slots          []CourseSlot `db:"-" json:"slots"`
}

// CourseSlot is one weekly lesson row attached to a course.
type CourseSlot struct {
	ID        string `db:"id" json:"id"`
	CourseID  string `db:"course_id" json:"-"`
	DayOfWeek int    `db:"day_of_week" json:"day_of_week"`
	StartHour int    `db:"start_hour" json:"start_hour"`
	EndHour   int    `db:"end_hour" json:"end_hour"`
}

// CourseFilter captures filtering options for listing courses.
type CourseFilter struct {
	Search    string
	Confirmed *bool
	CoachID   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// TimetableEntry is one concrete dated lesson on a coach timetable.
type TimetableEntry struct {
	CourseID    string    `json:"course_id"`
	CourseTitle string    `json:"course_title"`
	Date        time.Time `json:"date"`
	StartHour   int       `json:"start_hour"`
	EndHour     int       `json:"end_hour"`
}
