package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
)

const maxRequestBodySize = 1 << 20 // 1MB

// ErrEmptyBody is returned when the request carries no JSON document
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes JSON request body into the provided value with size limit.
// Numbers are kept as json.Number so field maps do not lose precision.
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	// Limit request body size to prevent DoS attacks
	limitedReader := io.LimitReader(r.Body, maxRequestBodySize)

	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// DecodeFields decodes a single JSON object into a field map
func DecodeFields(r *http.Request) (domain.FieldMap, error) {
	var fields domain.FieldMap
	if err := DecodeJSON(r, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return fields, nil
}

// DecodeFieldList decodes a JSON array of objects into field maps
func DecodeFieldList(r *http.Request) ([]domain.FieldMap, error) {
	var items []domain.FieldMap
	if err := DecodeJSON(r, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("request body must be a JSON array")
	}
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("item %d must be a JSON object", i)
		}
	}
	return items, nil
}

// GetParam extracts a required URL parameter
func GetParam(r *http.Request, key string) (string, error) {
	param := strings.TrimSpace(chi.URLParam(r, key))
	if param == "" {
		return "", fmt.Errorf("missing parameter: %s", key)
	}
	return param, nil
}

// GetBoolQuery reports whether a query flag is set. A bare flag ("?low-stock")
// counts as true.
func GetBoolQuery(r *http.Request, key string) bool {
	values, ok := r.URL.Query()[key]
	if !ok {
		return false
	}
	if len(values) == 0 || values[0] == "" {
		return true
	}
	switch strings.ToLower(values[0]) {
	case "1", "true", "yes":
		return true
	}
	return false
}
