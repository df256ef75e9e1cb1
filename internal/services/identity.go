package services

import (
	"errors"
	"time"

	"github.com/denmor86/ya-orderbot/internal/config"
	"github.com/go-chi/jwtauth/v5"
)

var ErrEmptyOperator = errors.New("operator name is required")

const (
	TokenSecterAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour
)

// Identity выпускает и проверяет токены операторов служебного HTTP API
type Identity struct {
	JWTAuth *jwtauth.JWTAuth
}

// Создание сервиса
func NewIdentity(cfg config.ServerConfig) *Identity {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.JWTSecret), nil)
	return &Identity{JWTAuth: tokenAuth}
}

// Создание строки JWT токена для оператора
func (i *Identity) GenerateJWT(operator string, ttl time.Duration) (string, error) {
	if operator == "" {
		return "", ErrEmptyOperator
	}
	if ttl <= 0 {
		ttl = TokenExpirationTime
	}
	claims := map[string]interface{}{
		"username": operator,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, ttl)

	_, tokenString, err := i.JWTAuth.Encode(claims)
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
