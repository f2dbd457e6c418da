package handler

import "testing"

type passwordField struct {
	Password string `validate:"required,roompassword"`
}

func TestValidator_PasswordStrength(t *testing.T) {
	v := NewValidator()

	valid := []string{
		"Sommer2024!",
		"Ab1?efgh",
		"Xy9_abcdefghijklmnopqrs",
		"Blåbær24!",
		// 24 characters but 26 bytes; length counts characters.
		"Åå1!aaaaaaaaaaaaaaaaaaaA",
	}
	for _, p := range valid {
		if err := v.Validate(&passwordField{Password: p}); err != nil {
			t.Fatalf("%q should be accepted: %v", p, err)
		}
	}

	invalid := map[string]string{
		"Ab1?efg":                   "too short",
		"Xy9_abcdefghijklmnopqrstu": "too long",
		"Øæ1!Aa7":                   "7 characters despite 9 bytes",
		"sommer2024!":               "missing uppercase",
		"SOMMER2024!":               "missing lowercase",
		"SommerTwo!":                "missing digit",
		"Sommer2024":                "missing special",
		"Sommer2024@":               "special not in allowed set",
	}
	for p, reason := range invalid {
		if err := v.Validate(&passwordField{Password: p}); err == nil {
			t.Fatalf("%q should be rejected (%s)", p, reason)
		}
	}
}

type emailField struct {
	Email string `validate:"required,email"`
}

func TestValidator_Email(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&emailField{Email: "kari@example.com"}); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := v.Validate(&emailField{Email: "not-an-email"}); err == nil {
		t.Fatalf("invalid email accepted")
	}
	if err := v.Validate(&emailField{Email: ""}); err == nil {
		t.Fatalf("empty email accepted")
	}
}
