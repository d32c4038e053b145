//go:build !gui

package main

import "log"

func main() {
	log.Fatal("This binary was built without the desktop GUI. Rebuild with -tags gui, or use cmd/cli for the embedded-webview and browser modes.")
}
