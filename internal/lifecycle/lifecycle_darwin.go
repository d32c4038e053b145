//go:build darwin

package lifecycle

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework Foundation

#import <Cocoa/Cocoa.h>

// Go callback, exported below
extern void CSHELL_OnActivationChange(int callbackID, int active);

static id becomeActiveObserver = nil;
static id resignActiveObserver = nil;

// StartObservingActivation registers for NSApplication activation
// notifications and forwards them to the Go callback identified by
// callbackID. Returns 0 on success, -1 if observers are already installed.
int CSHELL_StartObservingActivation(int callbackID) {
	if (becomeActiveObserver != nil || resignActiveObserver != nil) {
		return -1;
	}

	NSNotificationCenter *center = [NSNotificationCenter defaultCenter];

	becomeActiveObserver = [center addObserverForName:NSApplicationDidBecomeActiveNotification
	                                           object:nil
	                                            queue:[NSOperationQueue mainQueue]
	                                       usingBlock:^(NSNotification *note) {
		CSHELL_OnActivationChange(callbackID, 1);
	}];
	resignActiveObserver = [center addObserverForName:NSApplicationDidResignActiveNotification
	                                           object:nil
	                                            queue:[NSOperationQueue mainQueue]
	                                       usingBlock:^(NSNotification *note) {
		CSHELL_OnActivationChange(callbackID, 0);
	}];

	return 0;
}

// StopObservingActivation removes the notification observers.
// Returns 0 on success, -1 if none were installed.
int CSHELL_StopObservingActivation() {
	if (becomeActiveObserver == nil && resignActiveObserver == nil) {
		return -1;
	}

	NSNotificationCenter *center = [NSNotificationCenter defaultCenter];
	if (becomeActiveObserver != nil) {
		[center removeObserver:becomeActiveObserver];
		becomeActiveObserver = nil;
	}
	if (resignActiveObserver != nil) {
		[center removeObserver:resignActiveObserver];
		resignActiveObserver = nil;
	}
	return 0;
}
*/
import "C"
import (
	"fmt"
	"log"
	"sync"
)

var (
	mu             sync.Mutex
	nextCallbackID int
	callbacks      = make(map[int]ActivationCallback)
	observerActive bool
)

//export CSHELL_OnActivationChange
func CSHELL_OnActivationChange(callbackID C.int, active C.int) {
	mu.Lock()
	callback, exists := callbacks[int(callbackID)]
	mu.Unlock()

	if !exists {
		log.Printf("[lifecycle] Warning: callback %d not found", callbackID)
		return
	}

	callback(active != 0)
}

func observeActivationImpl(callback ActivationCallback) (cleanup func(), err error) {
	mu.Lock()
	defer mu.Unlock()

	// Only support one observer for now
	if observerActive {
		return nil, fmt.Errorf("activation observer already active")
	}

	// Register callback
	cbID := nextCallbackID
	nextCallbackID++
	callbacks[cbID] = callback

	if C.CSHELL_StartObservingActivation(C.int(cbID)) != 0 {
		delete(callbacks, cbID)
		return nil, fmt.Errorf("failed to start observing activation events")
	}

	observerActive = true
	log.Printf("[lifecycle] Activation observer started (callback ID: %d)", cbID)

	capturedCbID := cbID
	return func() {
		mu.Lock()
		defer mu.Unlock()

		if !observerActive {
			return
		}

		if C.CSHELL_StopObservingActivation() != 0 {
			log.Printf("[lifecycle] Warning: failed to stop activation observer")
		} else {
			log.Printf("[lifecycle] Activation observer stopped (callback ID: %d)", capturedCbID)
		}

		delete(callbacks, capturedCbID)
		observerActive = false
	}, nil
}
