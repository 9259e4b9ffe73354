package util

import (
	"arch_quiz_backend/internal/model"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Username: "student1", Role: model.Student}
	user.ID = 7

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "student1" || claims.Role != model.Student {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{Username: "student1", Role: model.Student}
	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("token accepted with the wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{Username: "student1", Role: model.Student}
	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Error("expired token accepted")
	}
}
