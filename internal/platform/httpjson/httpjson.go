// Package httpjson concentra el writeJSON que antes estaba duplicado en cada
// handler, más el mapeo de errores tipados (apperr) a status HTTP.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption-center/internal/domain/apperr"
	"pet-adoption-center/internal/platform/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Count   int    `json:"count,omitempty"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor traduce el Kind del error a status HTTP.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidationFailed:
		return http.StatusBadRequest
	case apperr.KindPreconditionFailed, apperr.KindReferentialConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error escribe el error como JSON. Los errores no tipados se loguean y
// se responden como "internal error" sin filtrar detalles.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok {
		logger.FromContext(r.Context()).Error("request failed", map[string]any{
			"error": err.Error(),
		})
		Write(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "InternalError",
			Message: "internal error",
		})
		return
	}

	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	Write(w, StatusFor(err), ErrorResponse{
		Error:   string(e.Code),
		Message: msg,
		Reason:  e.Reason,
		Count:   e.Count,
	})
}

// Decode lee el body JSON en v.
func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return apperr.InvalidInput("empty body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.InvalidInput("invalid json")
	}
	return nil
}

// QueryInt parsea un query param entero opcional.
func QueryInt(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.InvalidInput(key + " must be an integer")
	}
	return &n, nil
}

// QueryFloat parsea un query param decimal opcional.
func QueryFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.InvalidInput(key + " must be a number")
	}
	return &f, nil
}

// QueryDate parsea un query param YYYY-MM-DD opcional.
func QueryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil, apperr.InvalidInput(key + " must be YYYY-MM-DD")
	}
	return &t, nil
}

// ParseDate acepta YYYY-MM-DD o RFC3339.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.New("invalid date")
	}
	return t.UTC(), nil
}
