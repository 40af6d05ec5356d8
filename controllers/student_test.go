package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner/models"
	"study-planner/utils"
)

func TestSignup(t *testing.T) {
	sc := &StudentController{Students: newFakeStudentStore(), Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodPost, "/students",
		`{"name":"Alice","email":"a@x.com","password":"pw"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "pw")

	var created models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, models.RoleUser, created.Role)
}

func TestSignupMissingName(t *testing.T) {
	sc := &StudentController{Students: newFakeStudentStore(), Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodPost, "/students",
		`{"email":"a@x.com","password":"pw"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestSignupInvalidEmail(t *testing.T) {
	sc := &StudentController{Students: newFakeStudentStore(), Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodPost, "/students",
		`{"name":"Alice","email":"not-an-email","password":"pw"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email format")
}

func TestSignupMalformedJSON(t *testing.T) {
	sc := &StudentController{Students: newFakeStudentStore(), Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodPost, "/students", `{"name":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON")
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := newFakeStudentStore(&models.Student{ID: 1, Name: "Alice", Email: "a@x.com", Role: "user"})
	sc := &StudentController{Students: store, Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodPost, "/students",
		`{"name":"Bob","email":"a@x.com","password":"pw"}`, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")
}

func TestGetStudentNotFound(t *testing.T) {
	sc := &StudentController{Students: newFakeStudentStore(), Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodGet, "/students/999", "", asUser(999))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student not found")
}

func TestGetStudentOwnership(t *testing.T) {
	store := newFakeStudentStore(&models.Student{ID: 1, Name: "Alice", Email: "a@x.com", Role: "user"})
	sc := &StudentController{Students: store, Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodGet, "/students/1", "", asUser(2))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Forbidden")

	rec = doRequest(sc.Handler(), http.MethodGet, "/students/1", "", asUser(1))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(sc.Handler(), http.MethodGet, "/students/1", "", asAdmin(42))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateStudentRequiresAField(t *testing.T) {
	store := newFakeStudentStore(&models.Student{ID: 1, Name: "Alice", Email: "a@x.com", Role: "user"})
	sc := &StudentController{Students: store, Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodPut, "/students/1", `{}`, asUser(1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "At least one field is required")
}

func TestUpdateStudentEmailConflict(t *testing.T) {
	store := newFakeStudentStore(
		&models.Student{ID: 1, Name: "Alice", Email: "a@x.com", Role: "user"},
		&models.Student{ID: 2, Name: "Bob", Email: "b@x.com", Role: "user"},
	)
	sc := &StudentController{Students: store, Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodPut, "/students/1", `{"email":"b@x.com"}`, asUser(1))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")
}

func TestUpdateStudentName(t *testing.T) {
	store := newFakeStudentStore(&models.Student{ID: 1, Name: "Alice", Email: "a@x.com", Role: "user"})
	sc := &StudentController{Students: store, Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodPut, "/students/1", `{"name":"Alicia"}`, asUser(1))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alicia")
	assert.Equal(t, "Alicia", store.students[1].Name)
}

func TestDeleteStudent(t *testing.T) {
	store := newFakeStudentStore(&models.Student{ID: 1, Name: "Alice", Email: "a@x.com", Role: "user"})
	sc := &StudentController{Students: store, Log: testLogger()}

	rec := doRequest(sc.Handler(), http.MethodDelete, "/students/1", "", asUser(1))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(sc.Handler(), http.MethodGet, "/students/1", "", asUser(1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin(t *testing.T) {
	t.Setenv("SECRET", "test-secret")

	hash, err := utils.HashPassword("pw")
	require.NoError(t, err)
	store := newFakeStudentStore(&models.Student{ID: 1, Name: "Alice", Email: "a@x.com", Password: hash, Role: "user"})
	sc := &StudentController{Students: store, Log: testLogger()}

	rec := doRequest(sc.LoginHandler(), http.MethodPost, "/login",
		`{"email":"a@x.com","password":"pw"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.StudentID)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.Equal(t, "user", resp.Role)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := utils.HashPassword("pw")
	require.NoError(t, err)
	store := newFakeStudentStore(&models.Student{ID: 1, Name: "Alice", Email: "a@x.com", Password: hash, Role: "user"})
	sc := &StudentController{Students: store, Log: testLogger()}

	rec := doRequest(sc.LoginHandler(), http.MethodPost, "/login",
		`{"email":"a@x.com","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")

	rec = doRequest(sc.LoginHandler(), http.MethodPost, "/login",
		`{"email":"nobody@x.com","password":"pw"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRequiresFields(t *testing.T) {
	sc := &StudentController{Students: newFakeStudentStore(), Log: testLogger()}

	rec := doRequest(sc.LoginHandler(), http.MethodPost, "/login", `{"email":"a@x.com"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password is required")
}
