package dictionary

import (
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	writeFile(t, path, "one\n")

	changes := make(chan *Dictionary, 4)
	w, err := NewWatcher(func() (*Dictionary, error) {
		return LoadFile(path)
	}, func(d *Dictionary) {
		select {
		case changes <- d:
		default:
		}
	}, WithReloadDelay(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	writeFile(t, path, "one\ntwo\n")

	select {
	case d := <-changes:
		if !d.CheckWord("two") {
			t.Error("reloaded dictionary is missing the new word")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if w.Reloads() < 1 {
		t.Error("expected reload counted")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	writeFile(t, path, "one\n")

	changes := make(chan *Dictionary, 4)
	w, err := NewWatcher(func() (*Dictionary, error) {
		return LoadFile(path)
	}, func(d *Dictionary) {
		select {
		case changes <- d:
		default:
		}
	}, WithReloadDelay(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "other.txt"), "noise\n")

	select {
	case <-changes:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherBuildError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	writeFile(t, path, "one\n")

	buildErr := errors.New("broken")
	errs := make(chan error, 4)
	w, err := NewWatcher(func() (*Dictionary, error) {
		return nil, buildErr
	}, func(*Dictionary) {
		t.Error("onChange called after a failed build")
	}, WithReloadDelay(20*time.Millisecond), WithErrorHandler(func(err error) {
		select {
		case errs <- err:
		default:
		}
	}))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, "two\n")

	select {
	case err := <-errs:
		if !errors.Is(err, buildErr) {
			t.Errorf("expected build error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcherCloseWaitsForReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	writeFile(t, path, "one\n")

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var changed atomic.Bool
	w, err := NewWatcher(func() (*Dictionary, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return New("one", "two"), nil
	}, func(*Dictionary) {
		changed.Store(true)
	}, WithReloadDelay(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, "one\ntwo\n")

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	closed := make(chan struct{})
	go func() {
		w.Close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatal("Close returned while a reload was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
	if !changed.Load() {
		t.Error("running reload must complete")
	}
}

func TestWatcherClosed(t *testing.T) {
	w, err := NewWatcher(func() (*Dictionary, error) { return New(), nil }, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
	if err := w.Watch(t.TempDir()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
	if err := w.Watch(""); err != nil {
		t.Errorf("empty path should be ignored, got %v", err)
	}
}
