package main

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/denmor86/ya-orderbot/internal/config"
	"github.com/denmor86/ya-orderbot/internal/services"
	"github.com/spf13/pflag"
)

// Выпуск JWT токена оператора для служебного API бота
func main() {
	var args struct {
		JWTSecret string `env:"JWT_SECRET" envDefault:"secret"`
	}
	if err := env.Parse(&args); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse enviroment var: %s\n", err)
		os.Exit(1)
	}

	var (
		operator = pflag.StringP("operator", "o", "", "Operator name written to the token")
		ttl      = pflag.DurationP("ttl", "e", services.TokenExpirationTime, "Token lifetime")
		secret   = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
	)
	pflag.Parse()

	if *ttl <= 0 {
		*ttl = services.TokenExpirationTime
	}
	identity := services.NewIdentity(config.ServerConfig{JWTSecret: *secret})
	token, err := identity.GenerateJWT(*operator, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "token for %q expires at %s\n", *operator, time.Now().Add(*ttl).Format(time.RFC3339))
}
