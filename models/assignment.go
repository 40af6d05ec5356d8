package models

// DeadlineLayout is the wire format for assignment deadlines.
const DeadlineLayout = "2006-01-02 15:04:05"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// ParseStatus reports whether s is one of the two assignment statuses.
func ParseStatus(s string) (string, bool) {
	switch s {
	case StatusPending, StatusCompleted:
		return s, true
	}
	return "", false
}

type Assignment struct {
	ID          int    `json:"id"`
	StudentID   int    `json:"student_id"`
	CourseID    int    `json:"course_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
}
