package repository

import "log"

// FailSoft is the uniform read policy for view-serving queries: a
// failed fetch is logged and degraded to an empty list instead of
// crashing the caller's view. The degraded state is always a non-nil
// slice so it encodes as JSON [] rather than null. Write paths never
// go through here.
func FailSoft[T any](what string, value []T, err error) []T {
	if err != nil {
		log.Printf("%s failed, degrading to empty result: %v", what, err)
		return []T{}
	}
	if value == nil {
		return []T{}
	}
	return value
}
