package view

// ApiResponse is the uniform response envelope for every endpoint.
type ApiResponse[T any] struct {
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Request any    `json:"request,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// CreateResponse builds the response envelope. The request payload is echoed
// back only on validation failures so the caller can see what was rejected.
func CreateResponse[T any](data T, err error, request any, message string) ApiResponse[T] {
	resp := ApiResponse[T]{
		Data:    data,
		Request: request,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
