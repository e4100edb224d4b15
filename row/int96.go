package row

import (
	"encoding/binary"
	"time"
)

// julianUnixEpochDay is the Julian day number of 1970-01-01, the INT96
// legacy timestamp encoding's reference point (first 8 bytes: nanoseconds
// since local midnight; last 4 bytes: Julian day number).
const julianUnixEpochDay = 2440588

// int96ToTime converts a legacy INT96 timestamp value to UTC, the
// convention predating the TIMESTAMP logical type (spec §6 names INT96 in
// the physical-type enum without itself prescribing a conversion).
func int96ToTime(b [12]byte) time.Time {
	nanosOfDay := binary.LittleEndian.Uint64(b[0:8])
	julianDay := binary.LittleEndian.Uint32(b[8:12])
	days := int64(julianDay) - julianUnixEpochDay
	return time.Unix(days*86400, int64(nanosOfDay)).UTC()
}
