package labels

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

func TestLabels(t *testing.T) {
	tests := []struct {
		locale  string
		lang    language.Tag
		showing string
		pop     string
		one     string
		many    string
	}{
		{"en", language.English, "entering", "back", "1 page in history", "3 pages in history"},
		{"de", language.German, "erscheint", "zurück", "1 Seite im Verlauf", "3 Seiten im Verlauf"},
		{"de-AT", language.German, "erscheint", "zurück", "1 Seite im Verlauf", "3 Seiten im Verlauf"},
		{"fr", language.English, "entering", "back", "1 page in history", "3 pages in history"},
		{"not a tag!", language.English, "entering", "back", "1 page in history", "3 pages in history"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			l := New(tt.locale)
			if l.Language() != tt.lang {
				t.Errorf("Language() = %v, want %v", l.Language(), tt.lang)
			}
			if got := l.Visibility(router.Showing); got != tt.showing {
				t.Errorf("Visibility(Showing) = %q, want %q", got, tt.showing)
			}
			if got := l.Kind(router.RoutePop); got != tt.pop {
				t.Errorf("Kind(Pop) = %q, want %q", got, tt.pop)
			}
			if got := l.Depth(1); got != tt.one {
				t.Errorf("Depth(1) = %q, want %q", got, tt.one)
			}
			if got := l.Depth(3); got != tt.many {
				t.Errorf("Depth(3) = %q, want %q", got, tt.many)
			}
		})
	}
}

func TestEveryStateHasALabel(t *testing.T) {
	l := New("en")
	for _, v := range []router.Visibility{router.Hidden, router.Visible, router.Showing, router.Hiding} {
		if got := l.Visibility(v); got == "visibility_"+v.String() {
			t.Errorf("no label for %s", v)
		}
	}
	for _, k := range []router.RouteKind{router.RouteNone, router.RoutePush, router.RoutePop} {
		if got := l.Kind(k); got == "kind_"+k.String() {
			t.Errorf("no label for %s", k)
		}
	}
	if l.Help() == "help" {
		t.Error("no help label")
	}
}
