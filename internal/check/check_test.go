package check_test

import (
	"testing"

	"github.com/cwbudde/ccl/internal/check"
	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/parser"
	"github.com/cwbudde/ccl/internal/resolve"
)

func prep(t *testing.T, src string) error {
	t.Helper()
	p, perr := parser.Parse(src)
	if perr != nil {
		t.Fatalf("Parse: %s", perr.Error())
	}
	if rerr := resolve.Run(p); rerr != nil {
		t.Fatalf("resolve.Run: %s", rerr.Error())
	}
	if err := check.WellFormed(p); err != nil {
		return err
	}
	if terr := check.TypeCheck(p); terr != nil {
		return terr
	}
	return nil
}

func TestIntervalWithLowerBoundAboveUpperIsRejected(t *testing.T) {
	err := prep(t, "let x : 10..0 = 5")
	if err == nil {
		t.Fatal("expected an IntervalError for 10..0")
	}
	if _, ok := err.(*clerr.IntervalError); !ok {
		t.Fatalf("got %T, want *clerr.IntervalError", err)
	}
}

func TestCallArityMismatchIsRejected(t *testing.T) {
	err := prep(t, `
fun add(a : Int, b : Int) : Int = a + b
constraint c = add(1) = 1
`)
	if err == nil {
		t.Fatal("expected a ParameterError for a missing argument")
	}
	if _, ok := err.(*clerr.ParameterError); !ok {
		t.Fatalf("got %T, want *clerr.ParameterError", err)
	}
}

func TestUnboundedQuantifierParameterIsRejected(t *testing.T) {
	err := prep(t, "constraint c = forall i : Int | i >= 0 end")
	if err == nil {
		t.Fatal("expected a BoundedError for a quantifier over Int")
	}
	if _, ok := err.(*clerr.BoundedError); !ok {
		t.Fatalf("got %T, want *clerr.BoundedError", err)
	}
}

func TestTypeMismatchIsRejected(t *testing.T) {
	err := prep(t, "constraint c = true + 1 = 2")
	if err == nil {
		t.Fatal("expected a TypeError for Bool + Int")
	}
	if _, ok := err.(*clerr.TypeError); !ok {
		t.Fatalf("got %T, want *clerr.TypeError", err)
	}
}

func TestWellFormedProgramPasses(t *testing.T) {
	if err := prep(t, `
let x : 0..10 = 0
constraint c = forall i : 0..3 | i >= 0 end
`); err != nil {
		t.Fatalf("expected a well-formed program to pass, got %v", err)
	}
}
