package registry

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
	"codeberg.org/snonux/mediakit/internal/testutil"
)

func fakeFactory(kind processor.Kind) Factory {
	return func(cfg *config.Config) processor.Processor {
		return &testutil.FakeProcessor{ProcKind: kind}
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("uppercase", processor.KindText, fakeFactory(processor.KindText)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	factory, err := r.Get("uppercase")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if factory == nil {
		t.Fatal("Get() returned nil factory")
	}

	proc, err := r.New("uppercase", config.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if proc.Kind() != processor.KindText {
		t.Errorf("constructed processor kind = %q, want %q", proc.Kind(), processor.KindText)
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("dup", processor.KindAudio, fakeFactory(processor.KindAudio)); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	err := r.Register("dup", processor.KindAudio, fakeFactory(processor.KindAudio))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("second Register() error = %v, want ErrDuplicateName", err)
	}
	// The original entry must survive the collision.
	if _, err := r.Get("dup"); err != nil {
		t.Errorf("Get() after duplicate registration error = %v", err)
	}
}

func TestRegisterRejectsBadArguments(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("", processor.KindAudio, fakeFactory(processor.KindAudio)); err == nil {
		t.Error("Register() with empty name did not fail")
	}
	if err := r.Register("x", processor.KindAudio, nil); err == nil {
		t.Error("Register() with nil factory did not fail")
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("once", processor.KindText, fakeFactory(processor.KindText))

	defer func() {
		if recover() == nil {
			t.Error("MustRegister() did not panic on duplicate name")
		}
	}()
	r.MustRegister("once", processor.KindText, fakeFactory(processor.KindText))
}

func TestGetUnknownName(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if _, err := r.New("missing", config.Default()); !errors.Is(err, ErrNotFound) {
		t.Errorf("New() error = %v, want ErrNotFound", err)
	}
}

func TestNamesSortedAndFiltered(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("b_text", processor.KindText, fakeFactory(processor.KindText))
	r.MustRegister("a_audio", processor.KindAudio, fakeFactory(processor.KindAudio))
	r.MustRegister("c_audio", processor.KindAudio, fakeFactory(processor.KindAudio))

	if got, want := r.Names(), []string{"a_audio", "b_text", "c_audio"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got, want := r.NamesByKind(processor.KindAudio), []string{"a_audio", "c_audio"}; !reflect.DeepEqual(got, want) {
		t.Errorf("NamesByKind(audio) = %v, want %v", got, want)
	}
	if got := r.NamesByKind(processor.KindGeneric); len(got) != 0 {
		t.Errorf("NamesByKind(generic) = %v, want empty", got)
	}
}

func TestConcurrentRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	names := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"}
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := r.Register(name, processor.KindGeneric, fakeFactory(processor.KindGeneric)); err != nil {
				t.Errorf("Register(%q) error = %v", name, err)
			}
			if _, err := r.Get(name); err != nil {
				t.Errorf("Get(%q) error = %v", name, err)
			}
		}(name)
	}
	wg.Wait()

	if got := len(r.Names()); got != len(names) {
		t.Errorf("registry has %d entries, want %d", got, len(names))
	}
}
