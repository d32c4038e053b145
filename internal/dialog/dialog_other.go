//go:build !darwin

package dialog

import "log"

func showLoadFailureImpl(targetURL string, reason error) {
	// No native alert on this platform; the in-surface failure page is the
	// visible indication.
	log.Printf("[dialog] Load failure for %s: %v", targetURL, reason)
}
