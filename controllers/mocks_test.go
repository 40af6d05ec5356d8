package controllers

import (
	"study-planner/models"
	"study-planner/storage"
)

// Hand-written fakes for the store interfaces, backed by maps.

type fakeStudentStore struct {
	students map[int]*models.Student
	nextID   int
}

func newFakeStudentStore(students ...*models.Student) *fakeStudentStore {
	f := &fakeStudentStore{students: map[int]*models.Student{}, nextID: 1}
	for _, s := range students {
		f.students[s.ID] = s
		if s.ID >= f.nextID {
			f.nextID = s.ID + 1
		}
	}
	return f
}

func (f *fakeStudentStore) FindByID(id int) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStudentStore) FindByEmail(email string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			copy := *s
			return &copy, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStudentStore) Insert(student *models.Student) (int, error) {
	for _, s := range f.students {
		if s.Email == student.Email {
			return 0, storage.ErrConflict
		}
	}
	id := f.nextID
	f.nextID++
	copy := *student
	copy.ID = id
	f.students[id] = &copy
	return id, nil
}

func (f *fakeStudentStore) Update(student *models.Student) error {
	for _, s := range f.students {
		if s.Email == student.Email && s.ID != student.ID {
			return storage.ErrConflict
		}
	}
	copy := *student
	f.students[student.ID] = &copy
	return nil
}

func (f *fakeStudentStore) Delete(id int) error {
	if _, ok := f.students[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeCourseStore struct {
	courses map[int]*models.Course
	nextID  int
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	f := &fakeCourseStore{courses: map[int]*models.Course{}, nextID: 1}
	for _, c := range courses {
		f.courses[c.ID] = c
		if c.ID >= f.nextID {
			f.nextID = c.ID + 1
		}
	}
	return f
}

func (f *fakeCourseStore) FindByID(id int) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeCourseStore) FindByStudent(studentID int) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if c.StudentID == studentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) Insert(course *models.Course) (int, error) {
	id := f.nextID
	f.nextID++
	copy := *course
	copy.ID = id
	f.courses[id] = &copy
	return id, nil
}

func (f *fakeCourseStore) Update(course *models.Course) error {
	copy := *course
	f.courses[course.ID] = &copy
	return nil
}

func (f *fakeCourseStore) Delete(id int) error {
	if _, ok := f.courses[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

type fakeAssignmentStore struct {
	assignments map[int]*models.Assignment
	nextID      int
}

func newFakeAssignmentStore(assignments ...*models.Assignment) *fakeAssignmentStore {
	f := &fakeAssignmentStore{assignments: map[int]*models.Assignment{}, nextID: 1}
	for _, a := range assignments {
		f.assignments[a.ID] = a
		if a.ID >= f.nextID {
			f.nextID = a.ID + 1
		}
	}
	return f
}

func (f *fakeAssignmentStore) FindByID(id int) (*models.Assignment, error) {
	if a, ok := f.assignments[id]; ok {
		copy := *a
		return &copy, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeAssignmentStore) FindByStudent(studentID int) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range f.assignments {
		if a.StudentID == studentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) Insert(assignment *models.Assignment) (int, error) {
	id := f.nextID
	f.nextID++
	copy := *assignment
	copy.ID = id
	f.assignments[id] = &copy
	return id, nil
}

func (f *fakeAssignmentStore) UpdateFields(assignment *models.Assignment) (bool, error) {
	existing, ok := f.assignments[assignment.ID]
	if !ok {
		return false, nil
	}
	copy := *assignment
	copy.Status = existing.Status
	f.assignments[assignment.ID] = &copy
	return true, nil
}

func (f *fakeAssignmentStore) UpdateStatus(id int, status string) (bool, error) {
	existing, ok := f.assignments[id]
	if !ok {
		return false, nil
	}
	existing.Status = status
	return true, nil
}

func (f *fakeAssignmentStore) Delete(id int) error {
	if _, ok := f.assignments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.assignments, id)
	return nil
}

type fakeScheduleStore struct {
	schedules map[int]*models.Schedule
	courses   *fakeCourseStore
	nextID    int
}

func newFakeScheduleStore(courses *fakeCourseStore, schedules ...*models.Schedule) *fakeScheduleStore {
	f := &fakeScheduleStore{schedules: map[int]*models.Schedule{}, courses: courses, nextID: 1}
	for _, s := range schedules {
		f.schedules[s.ID] = s
		if s.ID >= f.nextID {
			f.nextID = s.ID + 1
		}
	}
	return f
}

func (f *fakeScheduleStore) FindByID(id int) (*models.Schedule, error) {
	if s, ok := f.schedules[id]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeScheduleStore) FindByCourse(courseID int) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range f.schedules {
		if s.CourseID == courseID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) FindByStudent(studentID int) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range f.schedules {
		course, ok := f.courses.courses[s.CourseID]
		if ok && course.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) Insert(schedule *models.Schedule) (int, error) {
	id := f.nextID
	f.nextID++
	copy := *schedule
	copy.ID = id
	f.schedules[id] = &copy
	return id, nil
}

func (f *fakeScheduleStore) Update(schedule *models.Schedule) error {
	copy := *schedule
	f.schedules[schedule.ID] = &copy
	return nil
}

func (f *fakeScheduleStore) Delete(id int) error {
	if _, ok := f.schedules[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.schedules, id)
	return nil
}
