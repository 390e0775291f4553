package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lotto/api/jwthelper"
	"lotto/domain/entities"
)

// Context keys set by VerifyJWT for downstream handlers
const (
	ContextKeyUserID = "authUserID"
	ContextKeyRole   = "authRole"
)

// Authenticator verifies bearer tokens and enforces role requirements
type Authenticator struct {
	signingKey []byte
}

// NewAuthenticator creates an authenticator with the given signing key
func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{signingKey: []byte(signingKey)}
}

// VerifyJWT validates the Authorization header and stores the caller's
// identity on the request context
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, role, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx.Set(ContextKeyUserID, userID)
		ctx.Set(ContextKeyRole, role)
		ctx.Next()
	}
}

// RequireApprover allows only roles that may decide transfers and conduct
// draws (admin and root)
func (a *Authenticator) RequireApprover() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, ok := ctx.Get(ContextKeyRole)
		if !ok || !role.(entities.Role).CanApproveTransfers() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient privileges"})
			return
		}
		ctx.Next()
	}
}

// RequireUserManager allows only roles that may manage users (root)
func (a *Authenticator) RequireUserManager() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, ok := ctx.Get(ContextKeyRole)
		if !ok || !role.(entities.Role).CanManageUsers() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient privileges"})
			return
		}
		ctx.Next()
	}
}
