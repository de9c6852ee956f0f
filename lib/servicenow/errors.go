// Copyright 2026 The Fermitools Authors
// SPDX-License-Identifier: Apache-2.0

package servicenow

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a non-2xx response from the Table API. ServiceNow
// returns a structured JSON error body with a message and a detail
// string that usually names the offending field or ACL.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the top-level error description.
	Message string

	// Detail carries instance-side specifics (ACL name, field name).
	Detail string
}

func (err *APIError) Error() string {
	if err.Detail != "" {
		return fmt.Sprintf("servicenow: HTTP %d: %s (%s)", err.StatusCode, err.Message, err.Detail)
	}
	return fmt.Sprintf("servicenow: HTTP %d: %s", err.StatusCode, err.Message)
}

// IsNotFound reports whether err is a Table API 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}

// IsAuthFailure reports whether err is a 401 response. The instance
// also answers 401 for expired passwords, so the CLI treats this as
// "re-check your credentials", not a transient failure.
func IsAuthFailure(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 401
}

// IsForbidden reports whether err is a 403 response (ACL denial).
func IsForbidden(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 403
}

// IsRateLimited reports whether err is a 429 response.
func IsRateLimited(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 429
}

// parseAPIError builds an *APIError from a status code and response
// body. Unparseable bodies are kept verbatim in Message so that proxy
// error pages still surface something useful.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wireError struct {
		Error struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
		Status string `json:"status"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Error.Message != "" {
		apiError.Message = wireError.Error.Message
		apiError.Detail = wireError.Error.Detail
	} else {
		apiError.Message = string(body)
	}

	return apiError
}
