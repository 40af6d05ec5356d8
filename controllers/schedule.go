package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"study-planner/models"
	"study-planner/storage"
	"study-planner/utils"
)

type ScheduleController struct {
	Schedules storage.ScheduleStore
	Courses   storage.CourseStore
	Log       *logrus.Logger
}

// Handler serves /schedules, /schedules/{id}, /schedules/courses/{id} and
// /schedules/students/{id}.
func (sc *ScheduleController) Handler() http.Handler {
	return baseHandler{
		get:    sc.listOrGet,
		post:   sc.createSchedule,
		put:    sc.updateSchedule,
		delete: sc.deleteSchedule,
	}
}

type createScheduleRequest struct {
	CourseID  string `json:"course_id" validate:"required"`
	Weekday   string `json:"weekday" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type updateScheduleRequest struct {
	CourseID  string `json:"course_id"`
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (sc *ScheduleController) listOrGet(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r)
	if len(segments) > 2 {
		switch segments[2] {
		case "students":
			sc.listByStudent(w, r)
			return
		case "courses":
			sc.listByCourse(w, r)
			return
		}
	}
	sc.getSchedule(w, r)
}

// getSchedule has no ownership check: schedules are not keyed by student.
func (sc *ScheduleController) getSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "schedule ID")
	if !ok {
		return
	}

	schedule, err := sc.Schedules.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Schedule not found"})
		return
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to get schedule")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get schedule"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, schedule)
}

func (sc *ScheduleController) listByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := intFromPath(w, r, 3, "course ID")
	if !ok {
		return
	}

	schedules, err := sc.Schedules.FindByCourse(courseID)
	if err != nil {
		sc.Log.WithError(err).Error("failed to list schedules")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get schedules"})
		return
	}
	if len(schedules) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "No schedules found"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, schedules)
}

func (sc *ScheduleController) listByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := intFromPath(w, r, 3, "student ID")
	if !ok {
		return
	}

	if !authorizeOwner(w, r, studentID) {
		return
	}

	schedules, err := sc.Schedules.FindByStudent(studentID)
	if err != nil {
		sc.Log.WithError(err).Error("failed to list schedules")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get schedules"})
		return
	}
	if len(schedules) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "No schedules found"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, schedules)
}

// createSchedule validates its fields before touching the store; the time
// ordering is strict (equal start and end is rejected).
func (sc *ScheduleController) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	courseID, err := strconv.Atoi(req.CourseID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid course_id"})
		return
	}
	weekday, ok := models.ParseWeekday(req.Weekday)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid weekday value"})
		return
	}
	start, err := time.Parse(models.TimeLayout, req.StartTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid start_time format"})
		return
	}
	end, err := time.Parse(models.TimeLayout, req.EndTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid end_time format"})
		return
	}
	if !start.Before(end) {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "start_time must be before end_time"})
		return
	}

	course, err := sc.Courses.FindByID(courseID)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Course not found"})
		return
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to get course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create schedule"})
		return
	}

	if !authorizeOwner(w, r, course.StudentID) {
		return
	}

	schedule := &models.Schedule{
		CourseID:  courseID,
		Weekday:   weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	id, err := sc.Schedules.Insert(schedule)
	if err != nil {
		sc.Log.WithError(err).Error("failed to insert schedule")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create schedule"})
		return
	}
	schedule.ID = id

	utils.ResponseJSON(w, http.StatusCreated, schedule)
}

// resolveOwner loads the schedule and its owning course, writing the 404/500
// response itself on failure. Authorization is always against the course's
// student.
func (sc *ScheduleController) resolveOwner(w http.ResponseWriter, r *http.Request, id int) (*models.Schedule, *models.Course, bool) {
	schedule, err := sc.Schedules.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Schedule not found"})
		return nil, nil, false
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to get schedule")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get schedule"})
		return nil, nil, false
	}

	course, err := sc.Courses.FindByID(schedule.CourseID)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Course not found"})
		return nil, nil, false
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to get course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get schedule"})
		return nil, nil, false
	}

	return schedule, course, true
}

func (sc *ScheduleController) updateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "schedule ID")
	if !ok {
		return
	}

	schedule, course, ok := sc.resolveOwner(w, r, id)
	if !ok {
		return
	}
	if !authorizeOwner(w, r, course.StudentID) {
		return
	}

	var req updateScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Weekday != "" {
		weekday, ok := models.ParseWeekday(req.Weekday)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid weekday value"})
			return
		}
		schedule.Weekday = weekday
	}
	if req.StartTime != "" {
		if _, err := time.Parse(models.TimeLayout, req.StartTime); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid start_time format"})
			return
		}
		schedule.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		if _, err := time.Parse(models.TimeLayout, req.EndTime); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid end_time format"})
			return
		}
		schedule.EndTime = req.EndTime
	}
	if req.CourseID != "" {
		courseID, err := strconv.Atoi(req.CourseID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid course_id"})
			return
		}
		newCourse, err := sc.Courses.FindByID(courseID)
		if err != nil {
			if err == storage.ErrNotFound {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Course ID does not exist"})
				return
			}
			sc.Log.WithError(err).Error("failed to check course")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update schedule"})
			return
		}
		// reassignment changes the schedule's owner, so the caller must
		// own the target course as well
		if !authorizeOwner(w, r, newCourse.StudentID) {
			return
		}
		schedule.CourseID = courseID
	}

	// re-check the invariant on the merged record
	start, err := time.Parse(models.TimeLayout, schedule.StartTime)
	if err != nil {
		sc.Log.WithError(err).Error("stored start_time is malformed")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update schedule"})
		return
	}
	end, err := time.Parse(models.TimeLayout, schedule.EndTime)
	if err != nil {
		sc.Log.WithError(err).Error("stored end_time is malformed")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update schedule"})
		return
	}
	if !start.Before(end) {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "start_time must be before end_time"})
		return
	}

	if err := sc.Schedules.Update(schedule); err != nil {
		sc.Log.WithError(err).Error("failed to update schedule")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update schedule"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, schedule)
}

func (sc *ScheduleController) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "schedule ID")
	if !ok {
		return
	}

	_, course, ok := sc.resolveOwner(w, r, id)
	if !ok {
		return
	}
	if !authorizeOwner(w, r, course.StudentID) {
		return
	}

	if err := sc.Schedules.Delete(id); err != nil {
		if err == storage.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Schedule not found"})
			return
		}
		sc.Log.WithError(err).Error("failed to delete schedule")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete schedule"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, "Schedule deleted successfully")
}
