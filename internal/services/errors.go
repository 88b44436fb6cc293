package services

// BadRequestError marks a send request the caller got wrong: no user
// turn in the conversation, or content that is empty after trimming.
type BadRequestError struct{ Message string }

func (e *BadRequestError) Error() string { return e.Message }

// GatewayError marks a failed call to the inference endpoint: network
// failure, non-success status, or a malformed response body.
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string { return e.Message }

func (e *GatewayError) Unwrap() error { return e.Err }
