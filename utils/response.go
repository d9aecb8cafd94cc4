package utils

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope:
// success -> {"success": true, "data": ..., "message": ...}
// failure -> {"success": false, "error": ...}

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func RespondWithData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func RespondWithMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{"success": true, "data": data, "message": message})
}
