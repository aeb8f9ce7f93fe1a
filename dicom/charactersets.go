// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dicom

import (
	"fmt"

	"golang.org/x/text/encoding"
)

// defaultCharacterRepertoire is the repertoire character string values are
// decoded through. Value bytes are preserved exactly as stored; interpreting
// the Specific Character Set (0008,0005) defined terms is left to the caller.
var defaultCharacterRepertoire encoding.Encoding = encoding.Nop

// decodeString decodes the raw bytes of a character string value through the
// character repertoire.
func decodeString(b []byte) (string, error) {
	decoded, err := defaultCharacterRepertoire.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding character string value: %w", err)
	}
	return string(decoded), nil
}
