// Package appnap provides App Nap prevention for macOS. While a navigation
// is outstanding the process must not be throttled when it loses focus, or
// a backgrounded window can sit in Loading far longer than the network
// warrants.
package appnap

// PreventAppNap prevents macOS from throttling this process via App Nap.
// Returns a release function that must be called to release the activity
// token once no navigation is outstanding anymore.
func PreventAppNap(reason string) (release func(), err error) {
	return preventAppNapImpl(reason)
}
