package questionnaire

import "golang.org/x/text/language"

// Match returns the engine whose locale best fits an Accept-Language
// header value. An empty or unparseable header yields the default.
func (b *Bank) Match(acceptLanguage string) *Engine {
	if acceptLanguage == "" {
		return b.Default()
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return b.Default()
	}

	// The default goes first so it wins when nothing matches.
	candidates := []*Engine{b.Default()}
	for _, id := range b.order {
		if id != b.def {
			candidates = append(candidates, b.engines[id])
		}
	}
	tags := make([]language.Tag, 0, len(candidates))
	for _, e := range candidates {
		t, err := language.Parse(e.Variant().Locale)
		if err != nil {
			t = language.Und
		}
		tags = append(tags, t)
	}

	_, idx, conf := language.NewMatcher(tags).Match(prefs...)
	if conf == language.No {
		return b.Default()
	}
	return candidates[idx]
}
