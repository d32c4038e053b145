//go:build darwin

package appdelegate

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework Foundation

#import <Cocoa/Cocoa.h>

// Go callback, exported below
extern void CSHELL_OnReopen();

// Custom NSApplicationDelegate handling dock re-activation and the
// terminate-after-last-window desktop convention.
@interface CSHELLAppDelegate : NSObject <NSApplicationDelegate>
@end

@implementation CSHELLAppDelegate

// Called when the dock icon is clicked while the app is running.
- (BOOL)applicationShouldHandleReopen:(NSApplication *)sender hasVisibleWindows:(BOOL)flag {
    NSLog(@"[appdelegate] applicationShouldHandleReopen (visible windows: %d)", flag);

    if (!flag) {
        // No open windows; let the shell re-launch one.
        CSHELL_OnReopen();
    }
    return YES;
}

// Desktop convention: the process exits when the last window closes.
- (BOOL)applicationShouldTerminateAfterLastWindowClosed:(NSApplication *)sender {
    return YES;
}

@end

static CSHELLAppDelegate *gDelegate = nil;

void CSHELL_InstallAppDelegate() {
    dispatch_async(dispatch_get_main_queue(), ^{
        if (gDelegate != nil) {
            NSLog(@"[appdelegate] Delegate already installed");
            return;
        }
        gDelegate = [[CSHELLAppDelegate alloc] init];
        [[NSApplication sharedApplication] setDelegate:gDelegate];
        NSLog(@"[appdelegate] App delegate installed");
    });
}
*/
import "C"
import (
	"log"
	"sync"
)

var (
	mu       sync.Mutex
	onReopen ReopenFunc
)

//export CSHELL_OnReopen
func CSHELL_OnReopen() {
	mu.Lock()
	callback := onReopen
	mu.Unlock()

	if callback == nil {
		log.Println("[appdelegate] Reopen event with no handler installed")
		return
	}
	log.Println("[appdelegate] Reopen event - no open windows, re-launching")
	callback()
}

// Install registers the app delegate with the shared NSApplication.
func Install(reopen ReopenFunc) {
	mu.Lock()
	onReopen = reopen
	mu.Unlock()

	C.CSHELL_InstallAppDelegate()
}
