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
	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

// maxDiagnostic bounds the CBOR diagnostic notation kept as detail.
const maxDiagnostic = 120

var cborDecMode cbor.DecMode

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{
		IntDec: cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// inspectCBOR reports b as COSE_Sign1 or generic CBOR when it is a single
// well-formed CBOR map, array or tag.
func inspectCBOR(b []byte) (Inspection, bool) {
	if len(b) == 0 || !isCBORStart(b[0]) {
		return Inspection{}, false
	}
	var v any
	if err := cborDecMode.Unmarshal(b, &v); err != nil {
		return Inspection{}, false
	}

	if alg, ok := coseSign1Alg(b); ok {
		return Inspection{Kind: KindCOSESign1, Detail: "alg=" + alg}, true
	}

	diag, err := cbor.Diagnose(b)
	if err != nil {
		return Inspection{Kind: KindCBOR}, true
	}
	return Inspection{Kind: KindCBOR, Detail: Truncate(diag, maxDiagnostic)}, true
}

// coseSign1Alg parses b as a tagged or untagged COSE_Sign1 message.
func coseSign1Alg(b []byte) (string, bool) {
	var headers cose.Headers
	var tagged cose.Sign1Message
	if err := tagged.UnmarshalCBOR(b); err == nil {
		headers = tagged.Headers
	} else {
		var untagged cose.UntaggedSign1Message
		if err := untagged.UnmarshalCBOR(b); err != nil {
			return "", false
		}
		headers = untagged.Headers
	}

	alg, err := headers.Protected.Algorithm()
	if err != nil {
		return "unknown", true
	}
	return alg.String(), true
}

// isCBORStart checks if a byte looks like a CBOR map, array or tag start.
func isCBORStart(b byte) bool {
	major := b >> 5
	return major == 5 || // map
		major == 6 || // tag
		major == 4 // array
}
