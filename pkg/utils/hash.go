package utils

import (
	"encoding/hex"

	"github.com/cespare/xxhash"
)

// FastHash returns a hex-encoded xxhash digest of data, used as a cheap
// cache key for ROM contents where an MD5 would be overkill (e.g. keying an
// in-memory telemetry session, not the save filename itself).
func FastHash(data []byte) string {
	sum := xxhash.Sum64(data)
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(sum >> (8 * uint(i)))
	}
	return hex.EncodeToString(buf[:])
}
