package builtins

import (
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// The reference catalog's candidate overload sets are exactly what a
// caller would want a stable, reviewable golden form of - a diff here
// means a builtin's signature (or its derived nullable/all-Null
// overloads) changed shape.
func TestRegisterNArgCandidatesGolden(t *testing.T) {
	r := newRegistry()
	// least is a call-site factory (its Int16 signature is shaped per
	// call, not fixed), so it has no RegisterNArg candidate set to
	// snapshot here.
	for _, name := range []string{"and", "not", "plus", "minus", "negate", "get"} {
		cs, err := r.Candidates(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		lines := make([]string, len(cs))
		for i, c := range cs {
			lines[i] = c.Signature.String()
		}
		sort.Strings(lines)
		snaps.MatchSnapshot(t, name, strings.Join(lines, "\n"))
	}
}
