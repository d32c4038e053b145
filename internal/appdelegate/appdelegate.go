package appdelegate

// ReopenFunc is called when the running app is re-activated with no open
// windows (dock icon click on macOS). The shell reacts by re-launching its
// window when none exists; with windows open the event is a no-op.
type ReopenFunc func()
