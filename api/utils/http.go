// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package utils holds the plumbing shared by the API handlers.
package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const JSONContentType = "application/json; charset=utf-8"

// StatusError carries the status code a handler failure is answered with.
type StatusError struct {
	Status int
	Cause  error
}

func (e *StatusError) Error() string {
	if e.Cause == nil {
		return http.StatusText(e.Status)
	}
	return e.Cause.Error()
}

func (e *StatusError) Unwrap() error { return e.Cause }

func HTTPError(cause error, status int) error {
	return &StatusError{Status: status, Cause: cause}
}

func BadRequest(cause error) error { return HTTPError(cause, http.StatusBadRequest) }
func NotFound(cause error) error   { return HTTPError(cause, http.StatusNotFound) }

// StatusOf returns the status err should be answered with, 500 unless a StatusError is in its chain.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}

// HandlerFunc is an http.HandlerFunc that reports failures instead of writing them.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc answers a failed handler with the error text and StatusOf the error.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			http.Error(w, err.Error(), StatusOf(err))
		}
	}
}

// ParseJSON decodes the request body into v, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func WriteJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(v)
}
