package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aethermind/rag-backend/internal/apperrors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps the error taxonomy onto HTTP: status and code both come
// from the error itself.
func RespondError(c *gin.Context, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(apperrors.HTTPStatus(err), ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    string(apperrors.CodeOf(err)),
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
