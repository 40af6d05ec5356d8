package storage

import (
	"database/sql"

	"github.com/pkg/errors"

	"study-planner/models"
)

type ScheduleStore interface {
	FindByID(id int) (*models.Schedule, error)
	FindByCourse(courseID int) ([]models.Schedule, error)
	// FindByStudent joins through courses: a schedule belongs to the
	// student who owns its course.
	FindByStudent(studentID int) ([]models.Schedule, error)
	Insert(schedule *models.Schedule) (int, error)
	Update(schedule *models.Schedule) error
	Delete(id int) error
}

type MySQLScheduleStore struct {
	db *sql.DB
}

func NewScheduleStore(db *sql.DB) *MySQLScheduleStore {
	return &MySQLScheduleStore{db: db}
}

func (s *MySQLScheduleStore) FindByID(id int) (*models.Schedule, error) {
	var schedule models.Schedule
	err := s.db.QueryRow(
		"SELECT schedule_id, course_id, weekday, start_time, end_time FROM schedules WHERE schedule_id = ?", id,
	).Scan(&schedule.ID, &schedule.CourseID, &schedule.Weekday, &schedule.StartTime, &schedule.EndTime)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find schedule by id")
	}
	return &schedule, nil
}

func (s *MySQLScheduleStore) FindByCourse(courseID int) ([]models.Schedule, error) {
	rows, err := s.db.Query(
		"SELECT schedule_id, course_id, weekday, start_time, end_time FROM schedules WHERE course_id = ?", courseID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list schedules by course")
	}
	return collectSchedules(rows, "list schedules by course")
}

func (s *MySQLScheduleStore) FindByStudent(studentID int) ([]models.Schedule, error) {
	rows, err := s.db.Query(
		`SELECT sc.schedule_id, sc.course_id, sc.weekday, sc.start_time, sc.end_time
		 FROM schedules sc JOIN courses c ON sc.course_id = c.course_id
		 WHERE c.student_id = ?`, studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list schedules by student")
	}
	return collectSchedules(rows, "list schedules by student")
}

func collectSchedules(rows *sql.Rows, op string) ([]models.Schedule, error) {
	defer rows.Close()

	var schedules []models.Schedule
	for rows.Next() {
		var schedule models.Schedule
		if err := rows.Scan(&schedule.ID, &schedule.CourseID, &schedule.Weekday, &schedule.StartTime, &schedule.EndTime); err != nil {
			return nil, errors.Wrap(err, "scan schedule")
		}
		schedules = append(schedules, schedule)
	}
	return schedules, errors.Wrap(rows.Err(), op)
}

func (s *MySQLScheduleStore) Insert(schedule *models.Schedule) (int, error) {
	result, err := s.db.Exec(
		"INSERT INTO schedules (course_id, weekday, start_time, end_time) VALUES (?, ?, ?, ?)",
		schedule.CourseID, schedule.Weekday, schedule.StartTime, schedule.EndTime,
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert schedule")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "insert schedule: last insert id")
	}
	return int(id), nil
}

func (s *MySQLScheduleStore) Update(schedule *models.Schedule) error {
	_, err := s.db.Exec(
		"UPDATE schedules SET course_id = ?, weekday = ?, start_time = ?, end_time = ? WHERE schedule_id = ?",
		schedule.CourseID, schedule.Weekday, schedule.StartTime, schedule.EndTime, schedule.ID,
	)
	return errors.Wrap(err, "update schedule")
}

func (s *MySQLScheduleStore) Delete(id int) error {
	result, err := s.db.Exec("DELETE FROM schedules WHERE schedule_id = ?", id)
	if err != nil {
		return errors.Wrap(err, "delete schedule")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete schedule: rows affected")
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
