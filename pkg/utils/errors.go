package utils

import (
	"errors"
	"fmt"
)

// Wraps a sentinel error with formatted details, keeping it matchable with errors.Is()
func MakeError(err error, detailsBody string, args ...any) error {
	return fmt.Errorf("%w: "+detailsBody, append([]any{err}, args...)...)
}

// Returns the first error of the list that matches any of the given sentinels, or nil
func FirstMatching(err error, sentinels ...error) error {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return nil
}
