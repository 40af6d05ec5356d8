package storage

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"study-planner/models"
)

type StudentStore interface {
	FindByID(id int) (*models.Student, error)
	FindByEmail(email string) (*models.Student, error)
	Insert(student *models.Student) (int, error)
	Update(student *models.Student) error
	Delete(id int) error
}

type MySQLStudentStore struct {
	db *sql.DB
}

func NewStudentStore(db *sql.DB) *MySQLStudentStore {
	return &MySQLStudentStore{db: db}
}

func (s *MySQLStudentStore) FindByID(id int) (*models.Student, error) {
	var student models.Student
	err := s.db.QueryRow(
		"SELECT student_id, name, email, password, role FROM students WHERE student_id = ?", id,
	).Scan(&student.ID, &student.Name, &student.Email, &student.Password, &student.Role)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find student by id")
	}
	return &student, nil
}

func (s *MySQLStudentStore) FindByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := s.db.QueryRow(
		"SELECT student_id, name, email, password, role FROM students WHERE email = ?", email,
	).Scan(&student.ID, &student.Name, &student.Email, &student.Password, &student.Role)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find student by email")
	}
	return &student, nil
}

func (s *MySQLStudentStore) Insert(student *models.Student) (int, error) {
	result, err := s.db.Exec(
		"INSERT INTO students (name, email, password, role) VALUES (?, ?, ?, ?)",
		student.Name, student.Email, student.Password, student.Role,
	)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == mysqlDuplicateEntry {
			return 0, ErrConflict
		}
		return 0, errors.Wrap(err, "insert student")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "insert student: last insert id")
	}
	return int(id), nil
}

func (s *MySQLStudentStore) Update(student *models.Student) error {
	_, err := s.db.Exec(
		"UPDATE students SET name = ?, email = ? WHERE student_id = ?",
		student.Name, student.Email, student.ID,
	)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == mysqlDuplicateEntry {
			return ErrConflict
		}
		return errors.Wrap(err, "update student")
	}
	return nil
}

// Delete removes the student and cascades to their courses, schedules and
// assignments in one transaction.
func (s *MySQLStudentStore) Delete(id int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "delete student: begin")
	}
	defer tx.Rollback()

	statements := []string{
		"DELETE sc FROM schedules sc JOIN courses c ON sc.course_id = c.course_id WHERE c.student_id = ?",
		"DELETE FROM assignments WHERE student_id = ?",
		"DELETE FROM courses WHERE student_id = ?",
	}
	for _, statement := range statements {
		if _, err := tx.Exec(statement, id); err != nil {
			return errors.Wrap(err, "delete student: cascade")
		}
	}

	result, err := tx.Exec("DELETE FROM students WHERE student_id = ?", id)
	if err != nil {
		return errors.Wrap(err, "delete student")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete student: rows affected")
	}
	if affected == 0 {
		return ErrNotFound
	}

	return errors.Wrap(tx.Commit(), "delete student: commit")
}
