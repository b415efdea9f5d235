package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	KindHTTP    ErrorKind = "http"
	KindNetwork ErrorKind = "network"
	KindDecode  ErrorKind = "decode"
)

// APIError is the normalized form of every failed call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Code       string
	Message    string
	Details    interface{}
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("network error: %s", e.Message)
	case KindDecode:
		return fmt.Sprintf("decode error: %s", e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// errorBody covers the server envelope plus the FastAPI and generic shapes.
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type envelope struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

type fieldError struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// newHTTPError builds an APIError from a non-2xx response body. Message
// priority: error.message, detail, message, error (string), status text.
func newHTTPError(status int, body []byte) *APIError {
	apiErr := &APIError{Kind: KindHTTP, StatusCode: status}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		var env envelope
		if len(parsed.Error) > 0 && json.Unmarshal(parsed.Error, &env) == nil {
			apiErr.Code = env.Code
			apiErr.Details = env.Details
			apiErr.Message = env.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = detailMessage(parsed.Detail)
		}
		if apiErr.Message == "" {
			apiErr.Message = parsed.Message
		}
		if apiErr.Message == "" && len(parsed.Error) > 0 {
			var s string
			if json.Unmarshal(parsed.Error, &s) == nil {
				apiErr.Message = s
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	}
	return apiErr
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	var list []fieldError
	if json.Unmarshal(raw, &list) == nil {
		msgs := make([]string, 0, len(list))
		for _, fe := range list {
			if fe.Msg == "" {
				continue
			}
			if len(fe.Loc) > 0 {
				msgs = append(msgs, fmt.Sprintf("%v: %s", fe.Loc[len(fe.Loc)-1], fe.Msg))
			} else {
				msgs = append(msgs, fe.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func newNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: err.Error(), Err: err}
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindHTTP {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool { return statusOf(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return statusOf(err) == http.StatusForbidden }
func IsNotFound(err error) bool     { return statusOf(err) == http.StatusNotFound }
func IsConflict(err error) bool     { return statusOf(err) == http.StatusConflict }

func IsValidation(err error) bool {
	s := statusOf(err)
	return s == http.StatusBadRequest || s == http.StatusUnprocessableEntity
}

func IsNetwork(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// MessageOf returns the user-facing message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
