package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"study-planner/models"
	"study-planner/utils"
)

// baseHandler routes one resource's requests by HTTP method. A nil hook
// means the method is not supported and yields a JSON 405.
type baseHandler struct {
	get    http.HandlerFunc
	post   http.HandlerFunc
	put    http.HandlerFunc
	delete http.HandlerFunc
}

func (h baseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var fn http.HandlerFunc
	switch r.Method {
	case http.MethodGet:
		fn = h.get
	case http.MethodPost:
		fn = h.post
	case http.MethodPut:
		fn = h.put
	case http.MethodDelete:
		fn = h.delete
	}
	if fn == nil {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, models.Error{Message: "Method not allowed"})
		return
	}
	fn(w, r)
}

// pathSegments splits the URL path on "/". Empty segments keep their index,
// so segment 2 is always the entity id on /resource/{id} paths.
func pathSegments(r *http.Request) []string {
	return strings.Split(r.URL.Path, "/")
}

// intFromPath reads the path segment at index as an integer. On failure it
// writes the 400 response itself; the caller must return without writing.
func intFromPath(w http.ResponseWriter, r *http.Request, index int, what string) (int, bool) {
	segments := pathSegments(r)
	if index >= len(segments) {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid " + what})
		return 0, false
	}
	id, err := strconv.Atoi(segments[index])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid " + what})
		return 0, false
	}
	return id, true
}

// AuthContext is the caller identity claimed via the student_id and role
// headers. Swapping in a token-based scheme only requires changing
// authFromRequest.
type AuthContext struct {
	StudentID int
	Role      string
}

// authFromRequest extracts the auth headers, writing the 401/400 response
// itself on failure.
func authFromRequest(w http.ResponseWriter, r *http.Request) (AuthContext, bool) {
	rawID := r.Header.Get("student_id")
	if rawID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Missing student_id header"})
		return AuthContext{}, false
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid student_id header"})
		return AuthContext{}, false
	}
	role := r.Header.Get("role")
	if role == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Missing role header"})
		return AuthContext{}, false
	}
	return AuthContext{StudentID: id, Role: role}, true
}

// authorize is the single ownership rule: admins may touch anything, users
// only their own resources.
func authorize(auth AuthContext, ownerID int) bool {
	if auth.Role == models.RoleAdmin {
		return true
	}
	return auth.Role == models.RoleUser && auth.StudentID == ownerID
}

// authorizeOwner extracts the caller identity and checks it against ownerID,
// writing the error response on failure.
func authorizeOwner(w http.ResponseWriter, r *http.Request, ownerID int) bool {
	auth, ok := authFromRequest(w, r)
	if !ok {
		return false
	}
	if !authorize(auth, ownerID) {
		utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Forbidden"})
		return false
	}
	return true
}
