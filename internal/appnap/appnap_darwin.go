//go:build darwin

package appnap

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation
#include <stdlib.h>
#import <Foundation/Foundation.h>

// Activity tokens cannot cross the cgo boundary directly, so they are kept
// in a process-global array and referenced by index.
static NSMutableArray *activityTokens = nil;
static dispatch_once_t initOnce;

void CSHELL_InitActivityTokens() {
    dispatch_once(&initOnce, ^{
        activityTokens = [[NSMutableArray alloc] init];
    });
}

// BeginActivity creates an activity token to prevent App Nap.
// Returns an integer ID (index) for the token, or -1 on error.
int CSHELL_BeginActivity(const char *reasonCStr) {
    CSHELL_InitActivityTokens();

    @autoreleasepool {
        NSString *reason = [NSString stringWithUTF8String:reasonCStr];
        if (!reason) {
            NSLog(@"[appnap] Failed to create reason string");
            return -1;
        }

        // NSActivityUserInitiated prevents App Nap while the load is in
        // flight. Sudden/automatic termination stay enabled so the shell
        // can still quit normally.
        NSActivityOptions options = NSActivityUserInitiated;

        id<NSObject> token = [[NSProcessInfo processInfo] beginActivityWithOptions:options
                                                                             reason:reason];
        if (!token) {
            NSLog(@"[appnap] Failed to create activity token");
            return -1;
        }

        @synchronized(activityTokens) {
            [activityTokens addObject:token];
            NSUInteger idx = [activityTokens count] - 1;
            NSLog(@"[appnap] Activity started (token ID: %lu, reason: %@)",
                  (unsigned long)idx, reason);
            return (int)idx;
        }
    }
}

// EndActivity releases an activity token.
// Returns 0 on success, -1 on error.
int CSHELL_EndActivity(int tokenID) {
    CSHELL_InitActivityTokens();

    @autoreleasepool {
        @synchronized(activityTokens) {
            if (tokenID < 0 || tokenID >= [activityTokens count]) {
                NSLog(@"[appnap] Invalid token ID: %d", tokenID);
                return -1;
            }

            id<NSObject> token = [activityTokens objectAtIndex:tokenID];
            if (!token || token == [NSNull null]) {
                NSLog(@"[appnap] Token already released: %d", tokenID);
                return -1;
            }

            [[NSProcessInfo processInfo] endActivity:token];
            [activityTokens replaceObjectAtIndex:tokenID withObject:[NSNull null]];
            NSLog(@"[appnap] Activity ended (token ID: %d)", tokenID);
            return 0;
        }
    }
}
*/
import "C"
import (
	"fmt"
	"log"
	"sync"
	"unsafe"
)

var (
	mu         sync.Mutex
	tokenID    C.int
	tokenValid bool
)

func preventAppNapImpl(reason string) (release func(), err error) {
	mu.Lock()
	defer mu.Unlock()

	// Only create token if not already active
	if tokenValid {
		log.Printf("[appnap] App Nap prevention already active (token ID: %d)", tokenID)
		return func() {}, nil
	}

	cReason := C.CString(reason)
	defer C.free(unsafe.Pointer(cReason))

	tid := C.CSHELL_BeginActivity(cReason)
	if tid < 0 {
		return nil, fmt.Errorf("failed to begin activity: token ID=%d", tid)
	}

	tokenID = tid
	tokenValid = true
	log.Printf("[appnap] App Nap prevention enabled (token ID: %d, reason: %s)", tokenID, reason)

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if !tokenValid {
			return
		}

		result := C.CSHELL_EndActivity(tokenID)
		if result != 0 {
			log.Printf("[appnap] Warning: failed to end activity: token ID=%d", tokenID)
		} else {
			log.Printf("[appnap] App Nap prevention disabled (released token ID: %d)", tokenID)
		}
		tokenValid = false
	}, nil
}
