package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BuildReference is the merchant reference sent with each checkout attempt.
func BuildReference(bookingID uint, at time.Time) string {
	return fmt.Sprintf("booking-%d-%d", bookingID, at.UnixMilli())
}

// ParseReference extracts the booking id from a merchant reference.
func ParseReference(ref string) (uint, bool) {
	parts := strings.Split(strings.TrimSpace(ref), "-")
	if len(parts) != 3 || parts[0] != "booking" {
		return 0, false
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	if _, err := strconv.ParseInt(parts[2], 10, 64); err != nil {
		return 0, false
	}
	return uint(id), true
}
