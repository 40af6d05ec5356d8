package controllers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"study-planner/models"
	"study-planner/storage"
	"study-planner/utils"
)

type CourseController struct {
	Courses storage.CourseStore
	Log     *logrus.Logger
}

// Handler serves /courses, /courses/{id} and /courses/students/{id}.
func (cc *CourseController) Handler() http.Handler {
	return baseHandler{
		get:    cc.listOrGet,
		post:   cc.createCourse,
		put:    cc.updateCourse,
		delete: cc.deleteCourse,
	}
}

type createCourseRequest struct {
	CourseName string `json:"course_name" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
}

type updateCourseRequest struct {
	CourseName string `json:"course_name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (cc *CourseController) listOrGet(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r)
	if len(segments) > 2 && segments[2] == "students" {
		cc.listByStudent(w, r)
		return
	}
	cc.getCourse(w, r)
}

func (cc *CourseController) getCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "course ID")
	if !ok {
		return
	}

	course, err := cc.Courses.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Course not found"})
		return
	}
	if err != nil {
		cc.Log.WithError(err).Error("failed to get course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get course"})
		return
	}

	if !authorizeOwner(w, r, course.StudentID) {
		return
	}

	utils.ResponseJSON(w, http.StatusOK, course)
}

func (cc *CourseController) listByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := intFromPath(w, r, 3, "student ID")
	if !ok {
		return
	}

	if !authorizeOwner(w, r, studentID) {
		return
	}

	courses, err := cc.Courses.FindByStudent(studentID)
	if err != nil {
		cc.Log.WithError(err).Error("failed to list courses")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get courses"})
		return
	}
	if len(courses) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "No courses found"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, courses)
}

// createCourse takes the owner from the student_id header. The start/end
// ordering invariant lives in the store's CHECK constraint; a violation
// surfaces here as a 500.
func (cc *CourseController) createCourse(w http.ResponseWriter, r *http.Request) {
	auth, ok := authFromRequest(w, r)
	if !ok {
		return
	}

	var req createCourseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := time.Parse(models.DateLayout, req.StartDate); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid date format"})
		return
	}
	if _, err := time.Parse(models.DateLayout, req.EndDate); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid date format"})
		return
	}

	course := &models.Course{
		StudentID: auth.StudentID,
		Name:      req.CourseName,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	id, err := cc.Courses.Insert(course)
	if err != nil {
		cc.Log.WithError(err).Error("failed to insert course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create course"})
		return
	}
	course.ID = id

	utils.ResponseJSON(w, http.StatusCreated, course)
}

func (cc *CourseController) updateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "course ID")
	if !ok {
		return
	}

	course, err := cc.Courses.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Course not found"})
		return
	}
	if err != nil {
		cc.Log.WithError(err).Error("failed to get course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update course"})
		return
	}

	if !authorizeOwner(w, r, course.StudentID) {
		return
	}

	var req updateCourseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.StartDate != "" {
		if _, err := time.Parse(models.DateLayout, req.StartDate); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid date format"})
			return
		}
		course.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		if _, err := time.Parse(models.DateLayout, req.EndDate); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid date format"})
			return
		}
		course.EndDate = req.EndDate
	}
	if req.CourseName != "" {
		course.Name = req.CourseName
	}

	if err := cc.Courses.Update(course); err != nil {
		cc.Log.WithError(err).Error("failed to update course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update course"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, course)
}

// deleteCourse cascades to the course's schedules inside the store.
func (cc *CourseController) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "course ID")
	if !ok {
		return
	}

	course, err := cc.Courses.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Course not found"})
		return
	}
	if err != nil {
		cc.Log.WithError(err).Error("failed to get course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete course"})
		return
	}

	if !authorizeOwner(w, r, course.StudentID) {
		return
	}

	if err := cc.Courses.Delete(id); err != nil {
		if err == storage.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Course not found"})
			return
		}
		cc.Log.WithError(err).Error("failed to delete course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete course"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, "Course deleted successfully")
}
