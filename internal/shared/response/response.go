package response

import "github.com/gin-gonic/gin"

// Envelope is the uniform wire shape for every endpoint: exactly one of Data
// or Error is set, and Ok mirrors which one.
type Envelope struct {
	Ok    bool        `json:"ok"`
	Data  any         `json:"data,omitempty"`
	Meta  *Pagination `json:"meta,omitempty"`
	Error *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Pagination struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func Page(total int64, page, size int) *Pagination {
	p := &Pagination{Total: total, Page: page, PageSize: size}
	if size > 0 {
		p.TotalPages = int((total + int64(size) - 1) / int64(size))
	}
	return p
}

func Success(c *gin.Context, status int, data any, meta *Pagination) {
	c.JSON(status, Envelope{Ok: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{
		Ok:    false,
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}
