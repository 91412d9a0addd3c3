package dto

// APIResponse is the uniform response envelope. Every endpoint returns
// either {ok:true, data:...} or {ok:false, error:{code, message}}.
type APIResponse struct {
	OK    bool         `json:"ok"`
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{OK: true, Data: data}
}

// NewErrorResponse wraps an error detail in a failure envelope
func NewErrorResponse(errorDetail *ErrorDetail) APIResponse {
	return APIResponse{OK: false, Error: errorDetail}
}

// PaginationInfo describes the page window of a list response
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalPages  int   `json:"totalPages" example:"5"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}
