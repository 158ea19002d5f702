// Copyright 2026 Dominik Schlosser
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package format classifies decoded QR payloads.
package format

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

type Kind string

const (
	KindEmpty     Kind = "empty"
	KindOID4VCI   Kind = "oid4vci"
	KindOID4VP    Kind = "oid4vp"
	KindURL       Kind = "url"
	KindURI       Kind = "uri"
	KindJSON      Kind = "json"
	KindJWT       Kind = "jwt"
	KindCBOR      Kind = "cbor"
	KindCOSESign1 Kind = "cose_sign1"
	KindText      Kind = "text"
	KindBinary    Kind = "binary"
)

// Inspection describes a payload. Detail is a short human-readable hint and
// may be empty.
type Inspection struct {
	Kind   Kind
	Detail string
}

var schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:\S`)

// Inspect classifies a QR payload.
//
// Detection order:
//  1. Non-UTF-8 bytes: raw CBOR / COSE_Sign1, otherwise binary
//  2. OpenID URI schemes (openid-credential-offer://, openid4vp://, haip://, eudi-openid4vp://)
//  3. HTTP(S) URL, with OID4 query params taking precedence
//  4. Any other URI scheme (mailto:, WIFI:, tel:, ...)
//  5. JSON
//  6. JWT (3 dot-separated parts with a JSON header)
//  7. Hex or base64url encoded CBOR / COSE_Sign1
//  8. Plain text
func Inspect(payload []byte) Inspection {
	if len(bytes.TrimSpace(payload)) == 0 {
		return Inspection{Kind: KindEmpty}
	}

	if !utf8.Valid(payload) {
		if in, ok := inspectCBOR(payload); ok {
			return in
		}
		return Inspection{Kind: KindBinary, Detail: fmt.Sprintf("%d bytes", len(payload))}
	}

	input := strings.TrimSpace(string(payload))
	lower := strings.ToLower(input)

	// 1. OpenID URI schemes
	if strings.HasPrefix(lower, "openid-credential-offer://") {
		return Inspection{Kind: KindOID4VCI, Detail: queryDetail(input, "credential_offer_uri")}
	}
	if strings.HasPrefix(lower, "openid4vp://") || strings.HasPrefix(lower, "haip://") || strings.HasPrefix(lower, "eudi-openid4vp://") {
		return Inspection{Kind: KindOID4VP, Detail: queryDetail(input, "client_id")}
	}

	// 2. HTTP(S) URL
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return inspectHTTP(input)
	}

	// 3. Other URI schemes
	if schemeRe.MatchString(input) && !strings.ContainsAny(input, " \t\r\n") {
		scheme, _, _ := strings.Cut(input, ":")
		return Inspection{Kind: KindURI, Detail: strings.ToLower(scheme)}
	}

	// 4. JSON (before JWT, since JSON with dots can look like JWT)
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		if in, ok := inspectJSON(input); ok {
			return in
		}
	}

	// 5. JWT
	if header, ok := jwtHeader(input); ok {
		return Inspection{Kind: KindJWT, Detail: headerDetail(header)}
	}

	// 6. Encoded CBOR
	if isHex(input) {
		if b, err := hex.DecodeString(input); err == nil {
			if in, ok := inspectCBOR(b); ok {
				return in
			}
		}
	}
	if b, err := DecodeBase64URL(input); err == nil {
		if in, ok := inspectCBOR(b); ok {
			return in
		}
	}

	return Inspection{Kind: KindText, Detail: fmt.Sprintf("%d characters", utf8.RuneCountInString(input))}
}

func inspectHTTP(raw string) Inspection {
	u, err := url.Parse(raw)
	if err != nil {
		return Inspection{Kind: KindURL}
	}
	q := u.Query()
	if q.Has("credential_offer") || q.Has("credential_offer_uri") {
		return Inspection{Kind: KindOID4VCI, Detail: u.Host}
	}
	if q.Has("client_id") || q.Has("request_uri") {
		return Inspection{Kind: KindOID4VP, Detail: u.Host}
	}
	return Inspection{Kind: KindURL, Detail: u.Host}
}

func queryDetail(raw, key string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if v := u.Query().Get(key); v != "" {
		return key + "=" + v
	}
	return ""
}

func inspectJSON(raw string) (Inspection, bool) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Inspection{}, false
	}
	switch val := v.(type) {
	case map[string]any:
		return Inspection{Kind: KindJSON, Detail: fmt.Sprintf("object with %d keys", len(val))}, true
	case []any:
		return Inspection{Kind: KindJSON, Detail: fmt.Sprintf("array of %d", len(val))}, true
	}
	return Inspection{Kind: KindJSON}, true
}

func headerDetail(header map[string]any) string {
	var parts []string
	for _, k := range []string{"alg", "typ", "kid"} {
		if v, ok := header[k].(string); ok && v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, " ")
}

func isHex(s string) bool {
	if len(s) < 2 || len(s)%2 != 0 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
