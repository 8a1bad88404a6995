package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"taskdeck/internal/domain"
)

// errorBody is the error payload shape the backend may return.
type errorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

// NormalizeErrors converts transport failures and non-2xx responses into
// *domain.APIError. Transport failures (no connection) get status 0 and a
// generic connectivity message, distinguishing them from server-returned
// error bodies.
func NormalizeErrors(logger domain.Logger) Middleware {
	return func(next RoundTripFunc) RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)
			if err != nil {
				logger.Error("http", "network error", "url", req.URL.String(), "error", err)
				return nil, &domain.APIError{
					Message: "Unable to connect to server. Please check your internet connection.",
				}
			}

			if resp.StatusCode < 400 {
				return resp, nil
			}

			apiErr := readError(resp)
			logger.Error("http", "request failed",
				"url", req.URL.String(), "status", apiErr.StatusCode, "message", apiErr.Message)
			return nil, apiErr
		}
	}
}

// readError drains the response body and builds the normalized error.
// The server-provided message wins over the status-code default.
func readError(resp *http.Response) *domain.APIError {
	defer func() { _ = resp.Body.Close() }()

	apiErr := &domain.APIError{
		StatusCode: resp.StatusCode,
		Message:    defaultMessage(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}
	if parsed.Message != "" {
		apiErr.Message = parsed.Message
	} else if parsed.Error != nil && parsed.Error.Message != "" {
		apiErr.Message = parsed.Error.Message
		apiErr.Details = parsed.Error.Details
	}
	return apiErr
}

// defaultMessage maps a status code to a user-facing message.
func defaultMessage(status int) string {
	switch status {
	case 400:
		return "Bad request. Please check your input."
	case 401:
		return "Unauthorized. Please login again."
	case 403:
		return "You do not have permission to perform this action."
	case 404:
		return "The requested resource was not found."
	case 409:
		return "Conflict. The resource already exists."
	case 422:
		return "Validation error. Please check your input."
	case 429:
		return "Too many requests. Please try again later."
	case 500:
		return "Internal server error. Please try again later."
	case 502:
		return "Bad gateway. The server is temporarily unavailable."
	case 503:
		return "Service unavailable. Please try again later."
	case 504:
		return "Gateway timeout. The server took too long to respond."
	default:
		return "An error occurred"
	}
}
