package controllers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"study-planner/models"
	"study-planner/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their json name
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody parses the JSON body into dst and runs struct validation,
// writing the 400 response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid JSON"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: validationMessage(err)})
		return false
	}
	return true
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request body"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	}
	return "Invalid value for " + fe.Field()
}
