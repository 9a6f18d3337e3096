package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docslot/docslot-api/internal/auth"
	"github.com/docslot/docslot-api/internal/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID = "userID"
	CtxDocID  = "docID"
)

// The clients send each principal's token in its own custom header rather
// than an Authorization bearer header.
const (
	userTokenHeader   = "token"
	doctorTokenHeader = "dtoken"
	adminTokenHeader  = "atoken"
)

func requireRole(tokens *auth.Tokens, header, role, ctxKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(header)
		if tokenStr == "" {
			utils.AbortError(c, http.StatusBadRequest, "Not Authorized! Try Again.")
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		if claims.Role != role {
			utils.AbortError(c, http.StatusUnauthorized, "Not Authorized! Try Again.")
			return
		}

		if ctxKey != "" {
			c.Set(ctxKey, claims.Subject)
		}
		c.Next()
	}
}

// AuthUser protects patient routes and injects the user id into the context.
func AuthUser(tokens *auth.Tokens) gin.HandlerFunc {
	return requireRole(tokens, userTokenHeader, auth.RoleUser, CtxUserID)
}

// AuthDoctor protects doctor-panel routes and injects the doctor id.
func AuthDoctor(tokens *auth.Tokens) gin.HandlerFunc {
	return requireRole(tokens, doctorTokenHeader, auth.RoleDoctor, CtxDocID)
}

// AuthAdmin protects admin routes. Admin identity is the configured email;
// handlers never need it, so nothing is injected.
func AuthAdmin(tokens *auth.Tokens) gin.HandlerFunc {
	return requireRole(tokens, adminTokenHeader, auth.RoleAdmin, "")
}
