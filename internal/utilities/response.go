package utilities

import (
	"github.com/gin-gonic/gin"
)

type GenericResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Response(ctx *gin.Context, statusCode int, success bool, data interface{}, message string) {
	response := GenericResponse{
		Success: success,
		Data:    data,
		Message: message,
	}

	ctx.JSON(statusCode, response)
}
