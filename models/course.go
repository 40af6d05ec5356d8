package models

// DateLayout is the wire format for course dates.
const DateLayout = "2006-01-02"

type Course struct {
	ID        int    `json:"id"`
	StudentID int    `json:"student_id"`
	Name      string `json:"course_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
