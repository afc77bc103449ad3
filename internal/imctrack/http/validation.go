package http

import (
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/bodytraq/imctrack/internal/imctrack/service"
	"github.com/bodytraq/imctrack/internal/imctrack/store"
)

// Measurement bounds enforced on every calculation request. The calculator
// itself does no range checking.
const (
	minHeight = 0.01
	maxHeight = 2.99
	minWeight = 0.01
	maxWeight = 499.99
)

const (
	defaultPage    = 1
	defaultPerPage = 5
	minPassword    = 8
)

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validateEmailField(email string, fields []FieldError) []FieldError {
	if !validEmail(email) {
		fields = append(fields, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	return fields
}

func validateMeasurements(height, weight float64) []FieldError {
	var fields []FieldError
	if height < minHeight || height > maxHeight {
		fields = append(fields, FieldError{
			Field:   "altura",
			Message: fmt.Sprintf("must be between %.2f and %.2f", minHeight, maxHeight),
		})
	}
	if weight < minWeight || weight > maxWeight {
		fields = append(fields, FieldError{
			Field:   "peso",
			Message: fmt.Sprintf("must be between %.2f and %.2f", minWeight, maxWeight),
		})
	}
	return fields
}

// parseHistoryQuery reads the pagination parameters: sort in {asc, desc}
// (case-insensitive, default desc), pag >= 1 (default 1), mostrar >= 1
// (default 5). Anything else is a validation error.
func parseHistoryQuery(r *http.Request) (service.HistoryQuery, []FieldError) {
	var fields []FieldError

	q := service.HistoryQuery{
		Order:   store.SortDesc,
		Page:    defaultPage,
		PerPage: defaultPerPage,
	}

	if raw := r.URL.Query().Get("sort"); raw != "" {
		switch strings.ToLower(raw) {
		case "asc":
			q.Order = store.SortAsc
		case "desc":
			q.Order = store.SortDesc
		default:
			fields = append(fields, FieldError{Field: "sort", Message: "must be asc or desc"})
		}
	}

	if raw := r.URL.Query().Get("pag"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || page < 1 {
			fields = append(fields, FieldError{Field: "pag", Message: "must be an integer >= 1"})
		} else {
			q.Page = page
		}
	}

	if raw := r.URL.Query().Get("mostrar"); raw != "" {
		perPage, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || perPage < 1 {
			fields = append(fields, FieldError{Field: "mostrar", Message: "must be an integer >= 1"})
		} else {
			q.PerPage = perPage
		}
	}

	return q, fields
}
