package net

import (
	"net/http"

	perr "spacebio/internal/platform/errors"
)

// Envelope is the JSON body every endpoint answers with
// success bodies carry data; failures carry code, error and optionally field
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply builds a success envelope for status
func Reply(status int, data any, reqID string) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Failure maps err onto its HTTP status and builds the error envelope
// a nil err yields a plain 200 reply
func Failure(err error, reqID string) Envelope {
	if err == nil {
		return Reply(http.StatusOK, nil, reqID)
	}
	status, w := perr.HTTP(err)
	env := Reply(status, nil, reqID)
	env.Code, env.Error, env.Field = w.Code, w.Message, w.Field
	return env
}
