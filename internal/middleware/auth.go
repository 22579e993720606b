package middleware

import (
	"net/http"
	"strings"

	"guardian-portal-go/internal/service"
	"guardian-portal-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the caregiver and its
// claims in the Gin context.
func AuthMiddleware(jwtManager *token.JWTManager, caregiverService service.CaregiverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// The caregiver may have been deleted since the token was issued.
		caregiver, err := caregiverService.GetProfile(claims.CaregiverID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "caregiver not found"})
			return
		}

		c.Set("caregiver", caregiver)
		c.Set("claims", claims)

		c.Next()
	}
}
