// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package store

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ETag returns a content fingerprint for data: a hex-encoded xxhash64
// digest. Mem and Local don't carry a native object-store ETag (an
// S3-backed Backend would use the one the API returns instead), so
// this gives a group loader something cheap to compare against a
// previously-seen value when deciding whether a consolidated
// .zmetadata document needs to be re-parsed.
func ETag(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
