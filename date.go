package gocfb

import (
	"time"
)

// filetimeUnixOffset is the number of seconds between 1601-01-01 and 1970-01-01.
const filetimeUnixOffset = 11644473600

// ParseFiletime converts a FILETIME, the count of 100 nanosecond intervals since
// January 1, 1601 UTC, into a time.Time.
// Directory entries often do not set any timestamp. In that case the value 0 is stored
// and time.Time{} is returned to be compatible with time.Time.IsZero().
func ParseFiletime(input uint64) time.Time {
	if input == 0 {
		return time.Time{}
	}

	seconds := int64(input/10000000) - filetimeUnixOffset
	nanoseconds := int64(input%10000000) * 100
	return time.Unix(seconds, nanoseconds).UTC()
}
