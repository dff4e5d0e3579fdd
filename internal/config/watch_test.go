package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, PhysicsFile)
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(target, []byte("collisions: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(target)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("collisions: [[player, enemy]]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.Abs(target)
	select {
	case got := <-w.Events:
		if got != want {
			t.Errorf("event for %q, expected %q", got, want)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event within 5s")
	}
}

func TestWatcherReportsAfterLastWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, PhysicsFile)
	if err := os.WriteFile(target, []byte("collisions: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(target)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// A truncate-then-write save: the first write leaves a partial file.
	final := "collisions: [[player, enemy]]\n"
	if err := os.WriteFile(target, []byte("collisions: [["), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(debounce / 5)
	if err := os.WriteFile(target, []byte(final), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events:
		data, err := os.ReadFile(target)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != final {
			t.Errorf("event fired before the last write, file = %q", data)
		}
		if _, err := ParsePhysics(data); err != nil {
			t.Errorf("ParsePhysics after event: %v", err)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event within 5s")
	}

	select {
	case name := <-w.Events:
		t.Errorf("burst reported twice, extra event for %q", name)
	case <-time.After(3 * debounce):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, SandboxFile))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	_ = w.Close()

	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed after Close")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", PhysicsFile)); err == nil {
		t.Error("watching a file in a missing directory should fail")
	}
}
