package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONErrorCode returns a structured error with a machine-readable code the
// frontend switches on (e.g. "error.loadFailed").
func JSONErrorCode(c *gin.Context, httpCode int, errCode, message string) {
	c.JSON(httpCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
		},
	})
}
