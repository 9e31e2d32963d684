package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apierrors "movo/internal/errors"
)

const (
	genericFailure  = "Something went wrong, please try again."
	notFoundMessage = "Page not found, Please contact the site administrator"
	networkFailure  = "Network error, please try again."
	sessionExpired  = "Session expired, login again"
)

// Report classifies err and posts one notification per extracted
// user-facing message. The raw error is untouched; callers that need it
// still receive it through their own OnError hooks.
func Report(err error, n Notifier) {
	if err == nil || n == nil {
		return
	}

	if errors.Is(err, apierrors.ErrSessionExpired) {
		n.Notify(SeverityError, sessionExpired)
		return
	}

	var status *apierrors.StatusError
	if errors.As(err, &status) {
		for _, msg := range Messages(status.Status, status.Body) {
			n.Notify(SeverityError, msg)
		}
		return
	}

	var transport *apierrors.TransportError
	if errors.As(err, &transport) {
		n.Notify(SeverityError, networkFailure)
		return
	}

	n.Notify(SeverityError, err.Error())
}

// Messages extracts the user-facing messages from a backend error
// response. The backend is not consistent: errors arrive as a flat
// "errors" list, an "errors" mapping of field to message(s), or an
// "error" string or object, sometimes with a top-level "message".
// Always returns at least one message.
func Messages(status int, body []byte) []string {
	if status == http.StatusNotFound {
		return []string{notFoundMessage}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return []string{genericFailure}
	}

	if status >= http.StatusInternalServerError {
		if s, ok := payload["errors"].(string); ok && s != "" {
			return []string{s}
		}
		if s, ok := payload["message"].(string); ok && s != "" {
			return []string{s}
		}
		return []string{genericFailure}
	}

	var out []string

	switch errs := payload["errors"].(type) {
	case string:
		if errs != "" {
			out = append(out, errs)
		}
	case []any:
		for _, item := range errs {
			out = append(out, flatten("", item)...)
		}
	case map[string]any:
		for field, value := range errs {
			out = append(out, flatten(field, value)...)
		}
	}

	if len(out) == 0 {
		switch errValue := payload["error"].(type) {
		case string:
			if msg, ok := payload["message"].(string); ok && msg != "" {
				out = append(out, msg)
			} else if errValue != "" {
				out = append(out, errValue)
			}
		case []any:
			for _, item := range errValue {
				out = append(out, flatten("", item)...)
			}
		case map[string]any:
			for field, value := range errValue {
				out = append(out, flatten(field, value)...)
			}
		}
	}

	if len(out) == 0 {
		if msg, ok := payload["message"].(string); ok && msg != "" {
			out = append(out, msg)
		}
	}

	if len(out) == 0 {
		return []string{genericFailure}
	}
	return out
}

// flatten renders one backend error value as messages, prefixing with
// the field name when one is known.
func flatten(field string, value any) []string {
	label := strings.ReplaceAll(field, "_", " ")

	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		if label != "" {
			return []string{fmt.Sprintf("%s: %s", label, v)}
		}
		return []string{v}
	case []any:
		var out []string
		for _, item := range v {
			out = append(out, flatten(field, item)...)
		}
		return out
	case map[string]any:
		// Objects either carry a "message" or map fields to messages.
		if msg, ok := v["message"].(string); ok && msg != "" {
			return []string{msg}
		}
		var out []string
		for k, item := range v {
			out = append(out, flatten(k, item)...)
		}
		return out
	default:
		return nil
	}
}
