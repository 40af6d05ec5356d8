package storage

import (
	"database/sql"

	"github.com/pkg/errors"

	"study-planner/models"
)

type CourseStore interface {
	FindByID(id int) (*models.Course, error)
	FindByStudent(studentID int) ([]models.Course, error)
	Insert(course *models.Course) (int, error)
	Update(course *models.Course) error
	Delete(id int) error
}

type MySQLCourseStore struct {
	db *sql.DB
}

func NewCourseStore(db *sql.DB) *MySQLCourseStore {
	return &MySQLCourseStore{db: db}
}

func (s *MySQLCourseStore) FindByID(id int) (*models.Course, error) {
	var course models.Course
	err := s.db.QueryRow(
		"SELECT course_id, student_id, course_name, start_date, end_date FROM courses WHERE course_id = ?", id,
	).Scan(&course.ID, &course.StudentID, &course.Name, &course.StartDate, &course.EndDate)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find course by id")
	}
	return &course, nil
}

func (s *MySQLCourseStore) FindByStudent(studentID int) ([]models.Course, error) {
	rows, err := s.db.Query(
		"SELECT course_id, student_id, course_name, start_date, end_date FROM courses WHERE student_id = ?", studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list courses by student")
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.StudentID, &course.Name, &course.StartDate, &course.EndDate); err != nil {
			return nil, errors.Wrap(err, "scan course")
		}
		courses = append(courses, course)
	}
	return courses, errors.Wrap(rows.Err(), "list courses by student")
}

// Insert relies on the table's CHECK (start_date <= end_date); a violation
// comes back as a plain driver error.
func (s *MySQLCourseStore) Insert(course *models.Course) (int, error) {
	result, err := s.db.Exec(
		"INSERT INTO courses (student_id, course_name, start_date, end_date) VALUES (?, ?, ?, ?)",
		course.StudentID, course.Name, course.StartDate, course.EndDate,
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert course")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "insert course: last insert id")
	}
	return int(id), nil
}

func (s *MySQLCourseStore) Update(course *models.Course) error {
	_, err := s.db.Exec(
		"UPDATE courses SET course_name = ?, start_date = ?, end_date = ? WHERE course_id = ?",
		course.Name, course.StartDate, course.EndDate, course.ID,
	)
	return errors.Wrap(err, "update course")
}

// Delete removes the course and its schedules in one transaction.
func (s *MySQLCourseStore) Delete(id int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "delete course: begin")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM schedules WHERE course_id = ?", id); err != nil {
		return errors.Wrap(err, "delete course: cascade schedules")
	}

	result, err := tx.Exec("DELETE FROM courses WHERE course_id = ?", id)
	if err != nil {
		return errors.Wrap(err, "delete course")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete course: rows affected")
	}
	if affected == 0 {
		return ErrNotFound
	}

	return errors.Wrap(tx.Commit(), "delete course: commit")
}
