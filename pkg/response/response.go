package response

// JSONResponse is the envelope used by middleware and a few handlers that
// cannot go through fres.
type JSONResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(message string, data interface{}) JSONResponse {
	return JSONResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data interface{}) JSONResponse {
	return JSONResponse{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
	}
}
