package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"opaleka/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// jwtAuth validates the bearer token, checks the role claim and stores the
// subject under ctxKey. A Redis cache-aside of the token hash lets a newer
// login supersede older tokens without a database round trip.
func jwtAuth(requiredRole, ctxKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal server error.",
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization.",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractIDAndRoleFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization.",
			})
			return
		}
		if requiredRole != "" && role != requiredRole {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Insufficient authorization.",
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + subject

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil:
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"success": false,
						"message": "Token mismatch.",
					})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
			case err == redis.Nil:
				_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
			default:
				log.Printf("WARNING: auth cache unavailable, accepting validated token: %v", err)
			}
		}

		c.Set(ctxKey, subject)
		c.Next()
	}
}

// JWTAuthUserMiddleware guards client-facing routes.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return jwtAuth("client", "userID")
}

// JWTAuthProviderMiddleware guards provider-facing routes.
func JWTAuthProviderMiddleware() gin.HandlerFunc {
	return jwtAuth("provider", "providerID")
}
