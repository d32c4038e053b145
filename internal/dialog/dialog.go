package dialog

// ShowLoadFailure presents a native alert telling the user that the remote
// content could not be loaded. It complements the in-surface failure page;
// surfaces without an owned window (system browser mode) rely on it alone.
func ShowLoadFailure(targetURL string, reason error) {
	showLoadFailureImpl(targetURL, reason)
}
