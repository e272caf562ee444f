package dto

// Error codes used by the public API.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeNotFound        = "NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeInvalidItemData = "INVALID_ITEM_DATA"
	CodeInternalError   = "INTERNAL_SERVER_ERROR"
)

// ErrorResponse is the stable error envelope every failure maps to.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
}
