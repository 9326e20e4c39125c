package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// RemoteError is a rejection by the server that has no sentinel of its own.
type RemoteError struct {
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

// mapTransportError classifies an error returned by http.Client.Do.
// Cancellation by the caller is returned as is.
func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// mapStatus converts a non-2xx response into an error.
func mapStatus(status int, body []byte) error {
	detail := parseDetail(body)

	var sentinel error
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		sentinel = ErrUnavailable
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		return &RemoteError{Status: status, Detail: detail}
	}

	if detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, detail)
}

type validationIssue struct {
	Msg string `json:"msg"`
	Loc []any  `json:"loc"`
}

// parseDetail extracts FastAPI's "detail" member, which is either a string
// or a list of validation issues.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var issues []validationIssue
	if err := json.Unmarshal(envelope.Detail, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, is := range issues {
			if field := issueField(is.Loc); field != "" {
				msgs = append(msgs, field+": "+is.Msg)
				continue
			}
			msgs = append(msgs, is.Msg)
		}
		return strings.Join(msgs, "; ")
	}

	return string(envelope.Detail)
}

// issueField returns the last string element of loc, e.g. "title" for
// ["body", "title"].
func issueField(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		if s, ok := loc[i].(string); ok {
			return s
		}
	}
	return ""
}
