package controllers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"study-planner/models"
	"study-planner/storage"
	"study-planner/utils"
)

type StudentController struct {
	Students storage.StudentStore
	Log      *logrus.Logger
}

// Handler serves /students and /students/{id}.
func (sc *StudentController) Handler() http.Handler {
	return baseHandler{
		get:    sc.getStudent,
		post:   sc.createStudent,
		put:    sc.updateStudent,
		delete: sc.deleteStudent,
	}
}

// LoginHandler serves POST /login.
func (sc *StudentController) LoginHandler() http.Handler {
	return baseHandler{post: sc.login}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateStudentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// createStudent registers a new student. Registration needs no auth headers;
// the role is always "user".
func (sc *StudentController) createStudent(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		sc.Log.WithError(err).Error("failed to hash password")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create student"})
		return
	}

	student := &models.Student{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleUser,
	}

	id, err := sc.Students.Insert(student)
	if err == storage.ErrConflict {
		utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "Email already exists"})
		return
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to insert student")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create student"})
		return
	}
	student.ID = id

	utils.ResponseJSON(w, http.StatusCreated, student)
}

func (sc *StudentController) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	student, err := sc.Students.FindByEmail(req.Email)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid credentials"})
		return
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to look up student for login")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to log in"})
		return
	}

	if !utils.ComparePasswords(student.Password, []byte(req.Password)) {
		utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(*student, 24*time.Hour)
	if err != nil {
		// identity response still goes out; only the token is dropped
		sc.Log.WithError(err).Warn("failed to generate login token")
	}

	utils.ResponseJSON(w, http.StatusOK, models.LoginResponse{
		StudentID: student.ID,
		Name:      student.Name,
		Email:     student.Email,
		Role:      student.Role,
		Token:     token,
	})
}

func (sc *StudentController) getStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "student ID")
	if !ok {
		return
	}

	student, err := sc.Students.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
		return
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to get student")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get student"})
		return
	}

	if !authorizeOwner(w, r, student.ID) {
		return
	}

	utils.ResponseJSON(w, http.StatusOK, student)
}

func (sc *StudentController) updateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "student ID")
	if !ok {
		return
	}

	student, err := sc.Students.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
		return
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to get student")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update student"})
		return
	}

	if !authorizeOwner(w, r, student.ID) {
		return
	}

	var req updateStudentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" && req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "At least one field is required"})
		return
	}

	if req.Email != "" {
		existing, err := sc.Students.FindByEmail(req.Email)
		if err != nil && err != storage.ErrNotFound {
			sc.Log.WithError(err).Error("failed to check email")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update student"})
			return
		}
		if err == nil && existing.ID != student.ID {
			utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "Email already exists"})
			return
		}
		student.Email = req.Email
	}
	if req.Name != "" {
		student.Name = req.Name
	}

	if err := sc.Students.Update(student); err != nil {
		if err == storage.ErrConflict {
			utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "Email already exists"})
			return
		}
		sc.Log.WithError(err).Error("failed to update student")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update student"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, student)
}

// deleteStudent removes the student; the store cascades to their courses,
// schedules and assignments.
func (sc *StudentController) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := intFromPath(w, r, 2, "student ID")
	if !ok {
		return
	}

	student, err := sc.Students.FindByID(id)
	if err == storage.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
		return
	}
	if err != nil {
		sc.Log.WithError(err).Error("failed to get student")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete student"})
		return
	}

	if !authorizeOwner(w, r, student.ID) {
		return
	}

	if err := sc.Students.Delete(id); err != nil {
		if err == storage.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
			return
		}
		sc.Log.WithError(err).Error("failed to delete student")
		utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete student"})
		return
	}

	utils.ResponseJSON(w, http.StatusOK, "Student deleted successfully")
}
