package models

import "strings"

// TimeLayout is the wire format for schedule times.
const TimeLayout = "15:04"

var weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// ParseWeekday matches s against the English weekday names, case-insensitively,
// and returns the canonical lowercase form.
func ParseWeekday(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, day := range weekdays {
		if s == day {
			return day, true
		}
	}
	return "", false
}

type Schedule struct {
	ID        int    `json:"id"`
	CourseID  int    `json:"course_id"`
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
