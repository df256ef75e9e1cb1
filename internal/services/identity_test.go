package services

import (
	"errors"
	"testing"
	"time"

	"github.com/denmor86/ya-orderbot/internal/config"
)

func TestIdentity_GenerateJWT(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.JWTSecret = "test-secret"
	identity := NewIdentity(cfg.Server)

	if identity.GetTokenAuth() == nil {
		t.Fatalf("Expected Identity to be initialized with JWTAuth")
	}

	testCases := []struct {
		TestName      string
		Operator      string
		ExpectedError error
	}{
		{TestName: "Success. Token for operator #1", Operator: "ops"},
		{TestName: "Error. Empty operator #2", Operator: "", ExpectedError: ErrEmptyOperator},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			token, err := identity.GenerateJWT(tc.Operator, time.Hour)
			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got '%v'", err)
			}

			decoded, err := identity.GetTokenAuth().Decode(token)
			if err != nil {
				t.Fatalf("Failed to decode token: %v", err)
			}
			username, _ := decoded.Get("username")
			if username != tc.Operator {
				t.Errorf("Expected username %q, got %v", tc.Operator, username)
			}
		})
	}
}
