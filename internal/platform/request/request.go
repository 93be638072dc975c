// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/date"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64 parses a named URL parameter as a positive integer key.

Returns:
  - error: a VALIDATION_ERROR naming the parameter when it is not a positive integer
*/
func Int64(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
QueryInt64 parses an optional query parameter as a positive integer.
It returns nil when the parameter is absent.
*/
func QueryInt64(request *http.Request, name string) (*int64, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil, validate.RequiredError(name, "Must be a positive integer")
	}
	return &value, nil
}

/*
QueryInt parses an optional integer query parameter, returning fallback when
it is absent or malformed.
*/
func QueryInt(request *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(request.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return value
}

/*
QueryDate parses an optional YYYY-MM-DD query parameter.
It returns nil when the parameter is absent.
*/
func QueryDate(request *http.Request, name string) (*date.Date, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	day, err := date.Parse(raw)
	if err != nil {
		return nil, validate.RequiredError(name, "Must be a date in YYYY-MM-DD format")
	}
	return &day, nil
}
