package helpers

import (
	"context"
	"errors"

	"github.com/denmor86/ya-orderbot/internal/logger"
	"github.com/go-chi/jwtauth/v5"
)

var ErrUndefinedOperator = errors.New("undefined operator")

// GetOperator - извлекает имя оператора из контекста JWT токена служебного API
func GetOperator(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	operator, ok := claims["username"].(string)
	if !ok || operator == "" {
		logger.Warn("undefined operator in token")
		return "", ErrUndefinedOperator
	}
	return operator, nil
}
