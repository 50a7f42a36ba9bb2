package profile

import "testing"

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/p", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestStart_NoMode(t *testing.T) {
	ctrl := New(WithPath(t.TempDir())).Start()

	if _, ok := ctrl.(ignore); !ok {
		t.Errorf("Start() without mode = %T, want ignore", ctrl)
	}

	ctrl.Stop()
}
