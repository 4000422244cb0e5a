package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"event-gallery-api/internal/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const subjectKey = "subject"

// AuthMiddleware 驗證上游簽發的 JWT 並解析出請求主體。
// 本服務不簽發 token，只認 HS256 簽章與 sub claim
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

func (m *AuthMiddleware) parseSubject(c *gin.Context) (access.Subject, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return access.Anonymous(), nil
	}

	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return access.Anonymous(), fmt.Errorf("malformed authorization header")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return access.Anonymous(), fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return access.Anonymous(), fmt.Errorf("invalid token claims")
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return access.Anonymous(), fmt.Errorf("invalid subject claim: %q", claims.Subject)
	}
	return access.User(userID), nil
}

// Required 必須帶有效 token，否則 401
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := m.parseSubject(c)
		if err != nil || sub.IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(subjectKey, sub)
		c.Next()
	}
}

// Optional 沒帶 token 就當匿名；帶了但無效一樣擋下，避免無效 token 靜默降級成匿名
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := m.parseSubject(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(subjectKey, sub)
		c.Next()
	}
}

// SubjectFrom 取出中介層解析好的主體；沒有就是匿名
func SubjectFrom(c *gin.Context) access.Subject {
	if v, ok := c.Get(subjectKey); ok {
		if sub, ok := v.(access.Subject); ok {
			return sub
		}
	}
	return access.Anonymous()
}
