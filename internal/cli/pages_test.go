package cli

import (
	"testing"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/resolver"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

func TestPageBuilder(t *testing.T) {
	build := page("Game")
	if got := build(nil); got != "Game" {
		t.Errorf("no params = %v", got)
	}
	if got := build(router.Params{"slot": 2, "id": "7"}); got != "Game (id=7, slot=2)" {
		t.Errorf("params = %v", got)
	}
}

func TestManifestPage(t *testing.T) {
	build, err := manifestPage(resolver.Manifest{Route: "store", Params: router.Params{"tab": "new"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := build(nil); got != "Store (tab=new)" {
		t.Errorf("defaults = %v", got)
	}
	if got := build(router.Params{"tab": "top"}); got != "Store (tab=top)" {
		t.Errorf("override = %v", got)
	}

	build, _ = manifestPage(resolver.Manifest{Route: "store", Title: "Shop"})
	if got := build(nil); got != "Shop" {
		t.Errorf("title = %v", got)
	}
}
