package script

import (
	"errors"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := s.GetGlobal("x"); v != lua.LNumber(2) {
		t.Errorf("x = %v, want 2", v)
	}
	if err := s.DoString(`invalid lua !!!`); err == nil {
		t.Error("syntax error should fail")
	}
}

func TestStatePrintIsSilent(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`print("hidden")`); err != nil {
		t.Errorf("print should be callable: %v", err)
	}
}

func TestStateClose(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close = %v", err)
	}
	if s.GetGlobal("x") != lua.LNil {
		t.Error("GetGlobal() after Close should be nil")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
