package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/storelane/storefront-api/models"
	"github.com/storelane/storefront-api/utils"
)

// ValidateToken resolves the bearer credential to a user identity and role
// and stores both on the request context. Session issuance happens outside
// this service; only the claims are trusted here.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, utils.Response{Success: false, Message: "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, utils.Response{Success: false, Message: "Invalid or expired token"})
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Response{Success: false, Message: "Invalid token claims"})
		c.Abort()
		return
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, utils.Response{Success: false, Message: "Invalid token claims"})
		c.Abort()
		return
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	c.Set("user_id", userID)
	c.Set("role", role)
	c.Next()
}

// RequireAdmin allows admin-role tokens through, or service callers holding
// the admin API key.
func RequireAdmin(c *gin.Context) {
	if apiKey := c.GetHeader("X-API-KEY"); apiKey != "" && apiKey == os.Getenv("ADMIN_API_KEY") {
		c.Set("user_id", "api-key-admin")
		c.Set("role", models.RoleAdmin)
		c.Next()
		return
	}

	ValidateToken(c)
	if c.IsAborted() {
		return
	}
	if c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, utils.Response{Success: false, Message: "admin access required", Code: utils.CodeForbidden})
		c.Abort()
		return
	}
	c.Next()
}

// CurrentActor builds the actor the order state machine authorizes against.
func CurrentActor(c *gin.Context) models.Actor {
	return models.Actor{
		UserID: c.GetString("user_id"),
		Role:   c.GetString("role"),
	}
}
