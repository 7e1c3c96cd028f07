package runtime

import "testing"

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", 1.0)
	v, ok := env.Get("x")
	if !ok || v != 1.0 {
		t.Fatalf("expected x=1.0, got v=%v ok=%v", v, ok)
	}
}

func TestEnvironmentGetWalksEnclosing(t *testing.T) {
	globals := NewEnvironment(nil)
	globals.Define("x", "global")
	local := NewEnvironment(globals)

	v, ok := local.Get("x")
	if !ok || v != "global" {
		t.Fatalf("expected to find x in enclosing scope, got v=%v ok=%v", v, ok)
	}
}

func TestEnvironmentGetMissingReportsNotOk(t *testing.T) {
	env := NewEnvironment(nil)
	if _, ok := env.Get("missing"); ok {
		t.Fatal("expected ok=false for an undefined name")
	}
}

func TestEnvironmentAssignUpdatesNearestBinding(t *testing.T) {
	globals := NewEnvironment(nil)
	globals.Define("x", 1.0)
	local := NewEnvironment(globals)
	local.Define("x", 2.0)

	if ok := local.Assign("x", 3.0); !ok {
		t.Fatal("expected assign to succeed")
	}
	v, _ := local.Get("x")
	if v != 3.0 {
		t.Fatalf("expected local x=3.0, got %v", v)
	}
	gv, _ := globals.Get("x")
	if gv != 1.0 {
		t.Fatalf("expected global x to remain 1.0, got %v", gv)
	}
}

func TestEnvironmentAssignUndefinedFails(t *testing.T) {
	env := NewEnvironment(nil)
	if ok := env.Assign("missing", 1.0); ok {
		t.Fatal("expected assign to an undefined name to fail")
	}
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	globals := NewEnvironment(nil)
	globals.Define("x", "global")
	block1 := NewEnvironment(globals)
	block1.Define("x", "block1")
	block2 := NewEnvironment(block1)

	v, ok := block2.GetAt(1, "x")
	if !ok || v != "block1" {
		t.Fatalf("GetAt(1, x) = %v, %v; want block1, true", v, ok)
	}

	if ok := block2.AssignAt(1, "x", "updated"); !ok {
		t.Fatal("expected AssignAt to succeed")
	}
	v, _ = block1.Get("x")
	if v != "updated" {
		t.Fatalf("expected block1.x to be updated, got %v", v)
	}
	gv, _ := globals.Get("x")
	if gv != "global" {
		t.Fatalf("expected globals.x to remain untouched, got %v", gv)
	}
}

func TestEnvironmentAssignAtUndefinedFails(t *testing.T) {
	env := NewEnvironment(nil)
	child := NewEnvironment(env)
	if ok := child.AssignAt(1, "missing", 1.0); ok {
		t.Fatal("expected AssignAt on an undefined name to fail")
	}
}
