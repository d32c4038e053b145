package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatchdogDetectsStalledNavigation(t *testing.T) {
	w := newWatchdog(t.TempDir(), 10*time.Millisecond)

	w.begin("instance-a")
	time.Sleep(30 * time.Millisecond)

	stalled := w.stalled(10 * time.Millisecond)
	if len(stalled) != 1 {
		t.Fatalf("Expected 1 stalled navigation, got %d", len(stalled))
	}
	if !strings.Contains(stalled[0], "instance-a") {
		t.Errorf("Stall report does not name the instance: %s", stalled[0])
	}
}

func TestWatchdogSettledNavigationIsNotStalled(t *testing.T) {
	w := newWatchdog(t.TempDir(), 10*time.Millisecond)

	w.begin("instance-a")
	w.end("instance-a")
	time.Sleep(30 * time.Millisecond)

	if stalled := w.stalled(10 * time.Millisecond); len(stalled) != 0 {
		t.Errorf("Expected no stalled navigations, got %v", stalled)
	}
}

func TestWatchdogFreshNavigationIsNotStalled(t *testing.T) {
	w := newWatchdog(t.TempDir(), time.Minute)

	w.begin("instance-a")
	if stalled := w.stalled(time.Minute); len(stalled) != 0 {
		t.Errorf("Expected no stalled navigations, got %v", stalled)
	}
}

func TestWatchdogStackDump(t *testing.T) {
	dir := t.TempDir()
	w := newWatchdog(dir, time.Minute)
	w.begin("instance-a")

	file := dir + "/stacks-test.log"
	if err := w.writeStackDump(file); err != nil {
		t.Fatalf("writeStackDump failed: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Failed to read dump: %v", err)
	}
	dump := string(data)
	if !strings.Contains(dump, "instance-a") {
		t.Error("Dump does not list the in-flight navigation")
	}
	if !strings.Contains(dump, "goroutine") {
		t.Error("Dump does not contain goroutine stacks")
	}
}

func TestWatchdogCreatesLogDirOnlyForDumps(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w := newWatchdog(dir, time.Minute)

	// Constructing and monitoring must not touch the filesystem.
	w.start()
	w.stop()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("Expected log directory untouched before a dump, stat err: %v", err)
	}

	w.dumpStacks()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Expected log directory after dump: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 dump file, got %d", len(entries))
	}
}

func TestWatchdogStartStop(t *testing.T) {
	w := newWatchdog(t.TempDir(), time.Minute)
	w.start()
	w.stop()
	// Stopping twice must not panic or block.
	w.stop()
}
