package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// PO numbers look like PO20240115042: the creation date plus a 3-digit
// random suffix. The format has a nonzero same-day collision chance, so
// creation verifies uniqueness against the store and regenerates on
// collision rather than assuming it away.
var poNumberPattern = regexp.MustCompile(`^PO\d{4}\d{2}\d{2}\d{3}$`)

// GeneratePONumber returns a fresh PO number for the given date.
func GeneratePONumber(now time.Time) string {
	return fmt.Sprintf("PO%s%03d", now.Format("20060102"), rand.Intn(1000))
}

// ValidatePONumber reports whether poNumber matches POYYYYMMDDXXX.
func ValidatePONumber(poNumber string) bool {
	return poNumberPattern.MatchString(poNumber)
}

// ExtractDateFromPO returns the embedded creation date, or false when
// the number doesn't match the canonical format.
func ExtractDateFromPO(poNumber string) (time.Time, bool) {
	if !ValidatePONumber(poNumber) {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102", poNumber[2:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// POAge returns the order's age in whole days as of now, or -1 when the
// number is not in canonical format.
func POAge(poNumber string, now time.Time) int {
	d, ok := ExtractDateFromPO(poNumber)
	if !ok {
		return -1
	}
	age := int(now.Sub(d).Hours() / 24)
	if age < 0 {
		age = -age
	}
	return age
}
