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

package format

import (
	"encoding/json"
	"strings"
)

// jwtHeader returns the decoded JOSE header of a compact JWT. The payload
// segment must also be base64url; its content is not interpreted since QR
// codes often carry JWS with non-JSON payloads.
func jwtHeader(raw string) (map[string]any, bool) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, false
	}

	headerBytes, err := DecodeBase64URL(parts[0])
	if err != nil {
		return nil, false
	}
	if _, err := DecodeBase64URL(parts[1]); err != nil {
		return nil, false
	}

	var header map[string]any
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, false
	}
	return header, true
}
