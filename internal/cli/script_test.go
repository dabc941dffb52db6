package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

func runScript(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append([]string{"script"}, args...))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScriptPushBack(t *testing.T) {
	got, err := runScript(t, "push:library", "push:game:id=7", "back", "back", "back")
	if err != nil {
		t.Fatal(err)
	}

	want := `start: ok
  active home, depth 0
  home#1 visible/none
push library: ok
  active library, depth 1
  home#1 hidden/push
  library#2 visible/push
push game: ok
  active game, depth 2
  home#1 hidden/push
  library#2 hidden/push
  game#3 visible/push
back: ok
  active library, depth 1
  home#1 hidden/push
  library#2 visible/pop
back: ok
  active home, depth 0
  home#1 visible/pop
back: history is empty
  active home, depth 0
  home#1 visible/pop
`
	if got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestScriptUnregisteredRoute(t *testing.T) {
	got, err := runScript(t, "push:store")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "push store: store is not registered\n  active home, depth 0\n") {
		t.Errorf("output:\n%s", got)
	}
}

func TestScriptClearAndSnapshot(t *testing.T) {
	got, err := runScript(t, "--snapshot", "push:library", "push:game", "push:about", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "clear: ok\n  active about, depth 1\n") {
		t.Errorf("clear should keep one entry:\n%s", got)
	}
	if !strings.Contains(got, `"route": "game"`) || strings.Contains(got, `"route": "library"`) {
		t.Errorf("snapshot should hold game only:\n%s", got)
	}
}

func TestScriptAnimateLeavesTransitions(t *testing.T) {
	got, err := runScript(t, "--animate", "push:library")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "  home#1 hiding/push\n  library#2 showing/push\n") {
		t.Errorf("output:\n%s", got)
	}
}

func TestScriptRejectsBadSteps(t *testing.T) {
	for _, arg := range []string{"jump:home", "push", "clear:now", "push:game:id"} {
		if _, err := runScript(t, arg); err == nil {
			t.Errorf("%q: expected error", arg)
		}
	}
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		arg   string
		want  step
		label string
	}{
		{"push:game", step{op: "push", route: "game"}, "push game"},
		{"replace:home:tab=2", step{op: "replace", route: "home", params: router.Params{"tab": "2"}}, "replace home"},
		{"back", step{op: "back"}, "back"},
		{"back:home", step{op: "back", route: "home"}, "back home"},
		{"back::page=3", step{op: "back", params: router.Params{"page": "3"}}, "back"},
		{"clear-all", step{op: "clear-all"}, "clear-all"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseStep(tt.arg)
			if err != nil {
				t.Fatal(err)
			}
			if got.op != tt.want.op || got.route != tt.want.route || len(got.params) != len(tt.want.params) {
				t.Fatalf("parseStep = %+v, want %+v", got, tt.want)
			}
			for k, v := range tt.want.params {
				if got.params[k] != v {
					t.Errorf("param %s = %v, want %v", k, got.params[k], v)
				}
			}
			if got.String() != tt.label {
				t.Errorf("String() = %q, want %q", got.String(), tt.label)
			}
		})
	}
}
