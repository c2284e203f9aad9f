package utils

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateFormat is the layout of date form fields.
const DateFormat = "2006-01-02"

var validate = validator.New()

// FormValue returns the trimmed value of a form field (body or query).
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// QueryValue returns the trimmed value of a URL query parameter.
func QueryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// Validate runs the struct's `validate` tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// ParseInt parses a number that must fit the INTEGER columns of the schema.
func ParseInt(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ParseID parses a positive integer identifier.
func ParseID(s string) (int, bool) {
	id, err := ParseInt(s)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ParseOptionalInt parses s when it is non-empty. An empty string yields nil.
func ParseOptionalInt(s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := ParseInt(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ParseOptionalDate parses a YYYY-MM-DD value. An empty string yields nil.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}
