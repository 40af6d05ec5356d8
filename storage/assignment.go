package storage

import (
	"database/sql"

	"github.com/pkg/errors"

	"study-planner/models"
)

type AssignmentStore interface {
	FindByID(id int) (*models.Assignment, error)
	FindByStudent(studentID int) ([]models.Assignment, error)
	Insert(assignment *models.Assignment) (int, error)
	// UpdateFields persists title/description/deadline/course and reports
	// whether any row changed. Status is updated separately.
	UpdateFields(assignment *models.Assignment) (bool, error)
	UpdateStatus(id int, status string) (bool, error)
	Delete(id int) error
}

type MySQLAssignmentStore struct {
	db *sql.DB
}

func NewAssignmentStore(db *sql.DB) *MySQLAssignmentStore {
	return &MySQLAssignmentStore{db: db}
}

func scanAssignment(row interface{ Scan(...interface{}) error }) (*models.Assignment, error) {
	var assignment models.Assignment
	var courseID sql.NullInt64
	var description sql.NullString
	err := row.Scan(&assignment.ID, &assignment.StudentID, &courseID, &assignment.Title,
		&description, &assignment.Deadline, &assignment.Status)
	if err != nil {
		return nil, err
	}
	assignment.CourseID = int(courseID.Int64)
	assignment.Description = description.String
	return &assignment, nil
}

func (s *MySQLAssignmentStore) FindByID(id int) (*models.Assignment, error) {
	row := s.db.QueryRow(
		"SELECT assignment_id, student_id, course_id, title, description, deadline, status FROM assignments WHERE assignment_id = ?", id,
	)
	assignment, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find assignment by id")
	}
	return assignment, nil
}

func (s *MySQLAssignmentStore) FindByStudent(studentID int) ([]models.Assignment, error) {
	rows, err := s.db.Query(
		"SELECT assignment_id, student_id, course_id, title, description, deadline, status FROM assignments WHERE student_id = ?", studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list assignments by student")
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan assignment")
		}
		assignments = append(assignments, *assignment)
	}
	return assignments, errors.Wrap(rows.Err(), "list assignments by student")
}

func nullableID(id int) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (s *MySQLAssignmentStore) Insert(assignment *models.Assignment) (int, error) {
	result, err := s.db.Exec(
		"INSERT INTO assignments (student_id, course_id, title, description, deadline, status) VALUES (?, ?, ?, ?, ?, ?)",
		assignment.StudentID, nullableID(assignment.CourseID), assignment.Title,
		nullableString(assignment.Description), assignment.Deadline, assignment.Status,
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert assignment")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "insert assignment: last insert id")
	}
	return int(id), nil
}

func (s *MySQLAssignmentStore) UpdateFields(assignment *models.Assignment) (bool, error) {
	result, err := s.db.Exec(
		"UPDATE assignments SET title = ?, description = ?, deadline = ?, course_id = ? WHERE assignment_id = ?",
		assignment.Title, nullableString(assignment.Description), assignment.Deadline,
		nullableID(assignment.CourseID), assignment.ID,
	)
	if err != nil {
		return false, errors.Wrap(err, "update assignment fields")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "update assignment fields: rows affected")
	}
	return affected > 0, nil
}

func (s *MySQLAssignmentStore) UpdateStatus(id int, status string) (bool, error) {
	result, err := s.db.Exec(
		"UPDATE assignments SET status = ? WHERE assignment_id = ?", status, id,
	)
	if err != nil {
		return false, errors.Wrap(err, "update assignment status")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "update assignment status: rows affected")
	}
	return affected > 0, nil
}

func (s *MySQLAssignmentStore) Delete(id int) error {
	result, err := s.db.Exec("DELETE FROM assignments WHERE assignment_id = ?", id)
	if err != nil {
		return errors.Wrap(err, "delete assignment")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete assignment: rows affected")
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
