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

type AssignmentController struct {
	Assignments storage.AssignmentStore
	Courses     storage.CourseStore
	Log         *logrus.Logger
}

// Handler serves /assignments, /assignments/{id} and /assignments/students/{id}.
func (ac *AssignmentController) Handler() http.Handler {
	return baseHandler{
		get:    ac.listOrGet,
		post:   ac.createAssignment,
		put:    ac.updateAssignment,
		delete: ac.deleteAssignment,
	}
}

type createAssignmentRequest struct {
	CourseID    string `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Deadline    string `json:"deadline" validate:"required"`
	Description string `json:"description"`
}

type updateAssignmentRequest struct {
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (ac *AssignmentController) listOrGet(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r)
	if len(segments) > 2 && segments[2] == "students" {
		ac.listByStudent(w, r)
		return
	}
	ac.getAssignment(w, r)
}

func (ac *AssignmentController) getAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "assignment ID")
	if !ok {
		return
	}

	assignment, err := ac.Assignments.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Assignment not found"})
		return
	}
	if err != nil {
		ac.Log.WithError(err).Error("failed to get assignment")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get assignment"})
		return
	}

	if !authorizeOwner(w, r, assignment.StudentID) {
		return
	}

	utils.ResponseJSON(w, http.StatusOK, assignment)
}

func (ac *AssignmentController) listByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := intFromPath(w, r, 3, "student ID")
	if !ok {
		return
	}

	if !authorizeOwner(w, r, studentID) {
		return
	}

	assignments, err := ac.Assignments.FindByStudent(studentID)
	if err != nil {
		ac.Log.WithError(err).Error("failed to list assignments")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get assignments"})
		return
	}
	if len(assignments) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "No assignments found"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, assignments)
}

func (ac *AssignmentController) createAssignment(w http.ResponseWriter, r *http.Request) {
	auth, ok := authFromRequest(w, r)
	if !ok {
		return
	}

	var req createAssignmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	courseID, err := strconv.Atoi(req.CourseID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid course_id"})
		return
	}
	if _, err := time.Parse(models.DeadlineLayout, req.Deadline); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid deadline format"})
		return
	}

	if _, err := ac.Courses.FindByID(courseID); err != nil {
		if err == storage.ErrNotFound {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Course ID does not exist"})
			return
		}
		ac.Log.WithError(err).Error("failed to check course")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create assignment"})
		return
	}

	assignment := &models.Assignment{
		StudentID:   auth.StudentID,
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      models.StatusPending,
	}

	id, err := ac.Assignments.Insert(assignment)
	if err != nil {
		ac.Log.WithError(err).Error("failed to insert assignment")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create assignment"})
		return
	}
	assignment.ID = id

	utils.ResponseJSON(w, http.StatusCreated, assignment)
}

// updateAssignment applies the field update and the status transition as two
// independent store calls; the request succeeds if either changed a row.
func (ac *AssignmentController) updateAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "assignment ID")
	if !ok {
		return
	}

	assignment, err := ac.Assignments.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Assignment not found"})
		return
	}
	if err != nil {
		ac.Log.WithError(err).Error("failed to get assignment")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update assignment"})
		return
	}

	if !authorizeOwner(w, r, assignment.StudentID) {
		return
	}

	var req updateAssignmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status := ""
	if req.Status != "" {
		parsed, ok := models.ParseStatus(req.Status)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid status value"})
			return
		}
		status = parsed
	}

	fieldsProvided := req.Title != "" || req.Description != "" || req.Deadline != "" || req.CourseID != ""
	if req.Deadline != "" {
		if _, err := time.Parse(models.DeadlineLayout, req.Deadline); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid deadline format"})
			return
		}
		assignment.Deadline = req.Deadline
	}
	if req.CourseID != "" {
		courseID, err := strconv.Atoi(req.CourseID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid course_id"})
			return
		}
		if _, err := ac.Courses.FindByID(courseID); err != nil {
			if err == storage.ErrNotFound {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Course ID does not exist"})
				return
			}
			ac.Log.WithError(err).Error("failed to check course")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update assignment"})
			return
		}
		assignment.CourseID = courseID
	}
	if req.Title != "" {
		assignment.Title = req.Title
	}
	if req.Description != "" {
		assignment.Description = req.Description
	}

	updated := false
	if fieldsProvided {
		changed, err := ac.Assignments.UpdateFields(assignment)
		if err != nil {
			ac.Log.WithError(err).Error("failed to update assignment fields")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update assignment"})
			return
		}
		updated = updated || changed
	}
	if status != "" {
		changed, err := ac.Assignments.UpdateStatus(id, status)
		if err != nil {
			ac.Log.WithError(err).Error("failed to update assignment status")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update assignment"})
			return
		}
		if changed {
			assignment.Status = status
		}
		updated = updated || changed
	}

	if !updated {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "No fields were updated"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, assignment)
}

func (ac *AssignmentController) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "assignment ID")
	if !ok {
		return
	}

	assignment, err := ac.Assignments.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Assignment not found"})
		return
	}
	if err != nil {
		ac.Log.WithError(err).Error("failed to get assignment")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete assignment"})
		return
	}

	if !authorizeOwner(w, r, assignment.StudentID) {
		return
	}

	if err := ac.Assignments.Delete(id); err != nil {
		if err == storage.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Assignment not found"})
			return
		}
		ac.Log.WithError(err).Error("failed to delete assignment")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete assignment"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, "Assignment deleted successfully")
}
