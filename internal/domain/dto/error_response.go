package dto

import "time"

// ErrorResponse is the JSON body returned for every non-2xx response.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Ship.speed is not valid."`  // Human readable summary
	ErrorDetails string    `json:"error,omitempty" example:"strconv.ParseFloat"` // Underlying error, if any
	Field        string    `json:"field,omitempty" example:"speed"`              // Offending field for validation errors
	Timestamp    time.Time `json:"timestamp"`                                    // When the error was produced (UTC)
}

// Error lets ErrorResponse be used as an error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err is optional and only contributes its message.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
