package response

import (
	"encoding/json"
	"net/http"
	"strings"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error response
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// Success writes a success response with data
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// Created writes a created response with the Location of the new resources
func Created(w http.ResponseWriter, data interface{}, locations ...string) {
	if len(locations) > 0 {
		w.Header().Set("Location", strings.Join(locations, ", "))
	}
	JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// Batch writes per-item batch outcomes with a summary
func Batch(w http.ResponseWriter, statusCode int, results interface{}, succeeded, failed int) {
	JSON(w, statusCode, map[string]interface{}{
		"success": failed == 0,
		"data":    results,
		"summary": map[string]int{
			"total":     succeeded + failed,
			"succeeded": succeeded,
			"failed":    failed,
		},
	})
}

// NoContent writes a no content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
