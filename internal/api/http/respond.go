package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/Mark6482/restaurant-service/internal/domain"
)

type errorResponse struct {
	Error      string           `json:"error"`
	Violations []fieldViolation `json:"violations,omitempty"`
}

type fieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type categoryNotEmptyResponse struct {
	Message     string `json:"message"`
	DishesCount int    `json:"dishes_count"`
	Suggestion  string `json:"suggestion"`
}

type deleteResponse struct {
	Message   string `json:"message"`
	DeletedID int    `json:"deleted_id"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps domain errors to status codes; anything unknown is a 500 with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var notEmpty *domain.CategoryNotEmptyError
	var invalid validator.ValidationErrors
	switch {
	case errors.As(err, &notEmpty):
		writeJSON(w, http.StatusConflict, categoryNotEmptyResponse{
			Message:     notEmpty.Error(),
			DishesCount: notEmpty.Dishes,
			Suggestion:  "Use force=true to delete category with all dishes",
		})
	case errors.As(err, &invalid):
		violations := make([]fieldViolation, 0, len(invalid))
		for _, fe := range invalid {
			violations = append(violations, fieldViolation{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Violations: violations})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: capitalize(err.Error())})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: strings.TrimPrefix(err.Error(), "conflict: ")})
	case errors.Is(err, errBadRequest), errors.Is(err, domain.ErrInvalidRating):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("request_id", requestID(r.Context())).Msg("Internal server error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || v <= 0 {
		return 0, badRequest("invalid %s", name)
	}
	return v, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, badRequest("invalid %s", name)
	}
	return v, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min", "gte":
		return "Value is too small"
	case "max", "lte":
		return "Value is too large"
	case "email":
		return "Invalid email format"
	case "url":
		return "Invalid URL"
	default:
		return "Invalid value"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
