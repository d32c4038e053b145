//go:build darwin

package dialog

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework Foundation

#include <stdlib.h>
#import <Cocoa/Cocoa.h>

// ShowLoadFailureAlert shows an NSAlert reporting that the hosted page
// could not be loaded. Runs asynchronously on the main thread so it can be
// called from any goroutine without blocking it.
void CSHELL_ShowLoadFailureAlert(const char *urlCStr, const char *reasonCStr) {
	NSString *url = [NSString stringWithUTF8String:urlCStr];
	NSString *reason = [NSString stringWithUTF8String:reasonCStr];

	dispatch_async(dispatch_get_main_queue(), ^{
		NSAlert *alert = [[NSAlert alloc] init];
		[alert setMessageText:@"Content Unavailable"];
		[alert setInformativeText:[NSString stringWithFormat:@"The application at %@ could not be loaded.\n\n%@", url, reason]];
		[alert addButtonWithTitle:@"OK"];
		[alert setAlertStyle:NSAlertStyleWarning];

		[alert runModal];
	});
}
*/
import "C"
import "unsafe"

func showLoadFailureImpl(targetURL string, reason error) {
	reasonText := ""
	if reason != nil {
		reasonText = reason.Error()
	}

	cURL := C.CString(targetURL)
	cReason := C.CString(reasonText)
	defer C.free(unsafe.Pointer(cURL))
	defer C.free(unsafe.Pointer(cReason))

	C.CSHELL_ShowLoadFailureAlert(cURL, cReason)
}
