//go:build !pprof

package profile

import "testing"

func TestModes_Disabled(t *testing.T) {
	if m := Modes(); m != nil {
		t.Errorf("Modes() = %v, want nil", m)
	}

	s := Make(WithMode("cpu")).Start()
	if _, ok := s.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op without the %s tag", s, Tag)
	}
}
