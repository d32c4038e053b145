//go:build !darwin

package appdelegate

import "log"

// Install is a no-op on non-Darwin platforms
func Install(reopen ReopenFunc) {
	log.Println("[appdelegate] App delegate not supported on this platform")
}
