package format

import (
	"encoding/base64"
	"encoding/json"
	"testing"
)

func makeJWT(header, payload map[string]any, sig string) string {
	h, _ := json.Marshal(header)
	p, _ := json.Marshal(payload)
	return base64.RawURLEncoding.EncodeToString(h) + "." +
		base64.RawURLEncoding.EncodeToString(p) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(sig))
}

func TestJWTHeader_Valid(t *testing.T) {
	jwt := makeJWT(
		map[string]any{"alg": "ES256", "typ": "JWT"},
		map[string]any{"sub": "user123"},
		"test-sig",
	)

	header, ok := jwtHeader(jwt)
	if !ok {
		t.Fatal("expected JWT to be recognized")
	}
	if header["alg"] != "ES256" {
		t.Errorf("header.alg = %v, want ES256", header["alg"])
	}
	if header["typ"] != "JWT" {
		t.Errorf("header.typ = %v, want JWT", header["typ"])
	}
}

func TestJWTHeader_NonJSONPayload(t *testing.T) {
	h, _ := json.Marshal(map[string]any{"alg": "EdDSA"})
	jws := base64.RawURLEncoding.EncodeToString(h) + "." +
		base64.RawURLEncoding.EncodeToString([]byte{0x01, 0x02}) + ".c2ln"

	if _, ok := jwtHeader(jws); !ok {
		t.Error("JWS with binary payload should still be recognized")
	}
}

func TestJWTHeader_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"two parts", "part1.part2"},
		{"four parts", "a.b.c.d"},
		{"empty header", ".eyJ9.sig"},
		{"header not base64url", "not*base64.eyJ9.sig"},
		{"header not JSON", base64.RawURLEncoding.EncodeToString([]byte("plain")) + ".eyJ9.sig"},
		{"dotted text", "www.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := jwtHeader(tt.input); ok {
				t.Errorf("jwtHeader(%q) should fail", tt.input)
			}
		})
	}
}
