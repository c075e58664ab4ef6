package utils

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, data gin.H) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error reports a failure. stage names the pipeline stage that failed
// so callers can tell the six external collaborators apart.
func Error(c *gin.Context, code int, stage, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"stage":   stage,
		"error":   msg,
	})
}
