// Package api holds the JSON response envelope and request decoding guards
// shared by all HTTP handlers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Envelope is the success response shape: {success, data, count?, pagination?}
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorBody is the failure response shape: {success:false, message}
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Pagination carries next/prev pages for list endpoints
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// Page is one pagination cursor
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// WriteData writes a success envelope with data only.
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteList writes a success envelope with data, count and pagination.
func WriteList(w http.ResponseWriter, status int, data interface{}, count int, pagination *Pagination) {
	writeJSON(w, status, Envelope{Success: true, Data: data, Count: &count, Pagination: pagination})
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorBody{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON parses the request body into dst, rejecting unknown fields,
// oversized bodies and trailing data. It writes the error response itself
// and reports whether decoding succeeded.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}

	if err := dec.Decode(&struct{}{}); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}

	return true
}

// PageParams normalizes page/limit query values and returns the offset for
// the list query.
func PageParams(page, limit int) (normPage, normLimit, offset int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}
	return page, limit, (page - 1) * limit
}

// PageLinks computes the pagination links for a list response, nil when the
// whole result fits on one page.
func PageLinks(page, limit, total int) *Pagination {
	offset := (page - 1) * limit
	pagination := &Pagination{}

	if offset+limit < total {
		pagination.Next = &Page{Page: page + 1, Limit: limit}
	}
	if offset > 0 {
		pagination.Prev = &Page{Page: page - 1, Limit: limit}
	}
	if pagination.Next == nil && pagination.Prev == nil {
		return nil
	}
	return pagination
}
