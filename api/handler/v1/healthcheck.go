package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealthcheck reports liveness
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
