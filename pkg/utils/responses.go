package utils

import (
	"encoding/json"
	"net/http"

	"media-review/pkg/apperr"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	writeResponse(w, code, Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func writeResponse(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// returns 204 No Content
func ResponseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	writeResponse(w, http.StatusBadRequest, Response{
		Message: message,
		Code:    apperr.CodeValidation,
		Errors:  errors,
	})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	writeResponse(w, http.StatusUnauthorized, Response{Message: message, Code: apperr.CodeUnauthenticated})
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusForbidden, Response{Message: message, Code: apperr.CodeForbidden})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusNotFound, Response{Message: message, Code: apperr.CodeNotFound})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusInternalServerError, Response{Message: message, Code: apperr.CodeInternal})
}

// ResponseError writes err using its *apperr.AppError status, falling back to 500.
func ResponseError(w http.ResponseWriter, err error) {
	ae := apperr.As(err)
	if ae == nil {
		ResponseInternalError(w, "Internal server error")
		return
	}

	if ae.HTTPStatus == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}

	var details any
	if len(ae.Details) > 0 {
		details = ae.Details
	}

	writeResponse(w, ae.HTTPStatus, Response{
		Message: ae.Message,
		Code:    ae.Code,
		Errors:  details,
	})
}
