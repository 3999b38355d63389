package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omarmohsen179/advanced-habit-tracker/cache"
	"github.com/omarmohsen179/advanced-habit-tracker/db"
	"github.com/omarmohsen179/advanced-habit-tracker/models"
	"github.com/omarmohsen179/advanced-habit-tracker/utils"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

var (
	jwtSecret       = []byte("supersecretkey")
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func ConfigureAuth(secret string, accessTTL, refreshTTL time.Duration) {
	jwtSecret = []byte(secret)
	accessTokenTTL = accessTTL
	refreshTokenTTL = refreshTTL
}

func RegisterUser(in models.RegisterInput) (models.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}

	utils.Logger.Info("user_registered",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return user, nil
}

// Authenticate reports the same error for a bad username and a bad
// password.
func Authenticate(username, password string) (models.User, error) {
	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func GetUser(id uint) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// IssueTokenPair mints an access/refresh pair. The refresh token carries a
// jti so logout can blacklist it individually.
func IssueTokenPair(user models.User) (access, refresh string, err error) {
	access, err = signToken(user, TokenTypeAccess, accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = signToken(user, TokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func signToken(user models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken verifies signature, expiry and token type.
func ParseToken(tokenStr, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("expected %s token, got %s", expectedType, claims.TokenType)
	}
	return claims, nil
}

// RefreshAccessToken mints a new access token from a live, non-revoked
// refresh token.
func RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := ParseToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidRefresh
	}
	if cache.IsTokenRevoked(claims.ID) {
		return "", ErrInvalidRefresh
	}
	user, err := GetUser(claims.UserID)
	if err != nil {
		return "", ErrInvalidRefresh
	}
	return signToken(user, TokenTypeAccess, accessTokenTTL)
}

// Logout revokes a refresh token. The two failure modes are distinct
// errors here even though the handler collapses them into one response.
func Logout(refreshToken string) error {
	if refreshToken == "" {
		return ErrMissingRefresh
	}
	claims, err := ParseToken(refreshToken, TokenTypeRefresh)
	if err != nil || claims.ExpiresAt == nil {
		return ErrInvalidRefresh
	}
	if cache.IsTokenRevoked(claims.ID) {
		return ErrInvalidRefresh
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := cache.RevokeToken(claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	utils.Logger.Info("refresh_token_revoked", zap.Uint("user_id", claims.UserID))
	return nil
}
