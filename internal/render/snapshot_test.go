package render_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/ccl/internal/render"
	"github.com/cwbudde/ccl/internal/run"
)

// TestToLangSnapshot pins the rendered text form of a small multi-entity
// program against a recorded snapshot, the way the teacher's fixture suite
// pins interpreter output with go-snaps rather than hand-written expected
// strings.
func TestToLangSnapshot(t *testing.T) {
	src := `
struct Point
  x : 0..10 = 2
  y : 0..10 = 3
  fun manhattan() : Int = self.x + self.y
end

inst origin : Point
constraint fixedX = origin.x = 2
constraint fixedY = origin.y = 3
solve
`
	res, err := run.Source(src)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if res.Outcome != run.Found {
		t.Fatalf("Outcome = %v, want Found", res.Outcome)
	}
	out := render.ToLang(res.Problem, &res.Model)
	snaps.MatchSnapshot(t, out)
}
