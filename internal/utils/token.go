package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// SessionCookieName 管理員 session cookie 的名稱
const SessionCookieName = "admin_session"

// SessionMaxAge 管理員 session 的有效期（秒）
const SessionMaxAge = 60 * 60 * 24 // 一天

// AdminClaims 管理員 session token 的內容
type AdminClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.StandardClaims
}

// GenerateAdminToken 生成一個新的管理員 session token
func GenerateAdminToken(secret []byte) (string, error) {
	nowTime := time.Now()
	expireTime := nowTime.Add(SessionMaxAge * time.Second)

	claims := AdminClaims{
		IsAdmin: true,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(secret)
}

// ParseAdminToken 解析和驗證管理員 session token
func ParseAdminToken(token string, secret []byte) (*AdminClaims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if tokenClaims != nil {
		if claims, ok := tokenClaims.Claims.(*AdminClaims); ok && tokenClaims.Valid {
			return claims, nil
		}
	}

	return nil, err
}
