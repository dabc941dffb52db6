// Package labels localizes the words a renderer shows for navigation state:
// transition phases, route kinds and history depth.
package labels

import (
	"embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/internal"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
)

func loadBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		for _, name := range []string{"locales/active.en.toml", "locales/active.de.toml"} {
			if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
				internal.GetInternalLogger().Error("Failed to load locale", "file", name, "error", err)
			}
		}
	})
	return bundle
}

// Labels renders navigation words in one language.
type Labels struct {
	localizer *i18n.Localizer
	lang      language.Tag
}

// New returns labels for locale (a BCP 47 tag such as "de" or "de-AT").
// Unknown or unsupported locales fall back to English.
func New(locale string) *Labels {
	b := loadBundle()
	requested, err := language.Parse(locale)
	if err != nil {
		requested = language.English
	}
	matched, _, _ := language.NewMatcher(b.LanguageTags()).Match(requested)
	base, _ := matched.Base()
	return &Labels{
		localizer: i18n.NewLocalizer(b, base.String()),
		lang:      language.Make(base.String()),
	}
}

// Language is the language the labels are rendered in.
func (l *Labels) Language() language.Tag {
	return l.lang
}

func (l *Labels) text(id string) string {
	s, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return s
}

// Visibility names a transition phase.
func (l *Labels) Visibility(v router.Visibility) string {
	return l.text("visibility_" + v.String())
}

// Kind names a navigation action.
func (l *Labels) Kind(k router.RouteKind) string {
	return l.text("kind_" + k.String())
}

// Depth describes a history stack length.
func (l *Labels) Depth(n int) string {
	s, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    "history_depth",
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
	if err != nil {
		return "history_depth"
	}
	return s
}

// Help is the key binding hint shown by the demo renderer.
func (l *Labels) Help() string {
	return l.text("help")
}
