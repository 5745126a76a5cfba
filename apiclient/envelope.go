package apiclient

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/goliatone/go-storefront"
)

type authEnvelope struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	Data   struct {
		User *storefront.User `json:"user"`
	} `json:"data"`
}

func (e authEnvelope) response() *storefront.AuthResponse {
	return &storefront.AuthResponse{
		Token: e.Token,
		User:  e.Data.User,
	}
}

type userEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		User *storefront.User `json:"user"`
	} `json:"data"`
}

type errorEnvelope struct {
	Status  string                     `json:"status"`
	Message string                     `json:"message"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

// decodeAPIError builds an APIError from a non 2xx response. Bodies that are
// not JSON still produce an error carrying the status code.
func decodeAPIError(statusCode int, raw []byte) *storefront.APIError {
	apiErr := &storefront.APIError{
		StatusCode: statusCode,
		Status:     strings.ToLower(http.StatusText(statusCode)),
	}

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return apiErr
	}

	if env.Status != "" {
		apiErr.Status = env.Status
	}
	apiErr.Message = env.Message

	if len(env.Errors) > 0 {
		apiErr.Errors = make(map[string]string, len(env.Errors))
		for field, value := range env.Errors {
			if msg := fieldMessage(value); msg != "" {
				apiErr.Errors[field] = msg
			}
		}
		if len(apiErr.Errors) == 0 {
			apiErr.Errors = nil
		}
	}

	return apiErr
}

// fieldMessage accepts either "message" or {"message": "..."} per field.
func fieldMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}

	return ""
}
