package domain

// Source is one of the fixed news providers the feed aggregates.
type Source string

const (
	SourceGoogle    Source = "Google"
	SourceOpenAI    Source = "OpenAI"
	SourceAnthropic Source = "Anthropic"
	SourceMistralAI Source = "MistralAI"
	SourceMicrosoft Source = "Microsoft"
	SourceAWS       Source = "AWS"
)

// Sources lists every known provider in display order.
func Sources() []Source {
	return []Source{
		SourceGoogle,
		SourceOpenAI,
		SourceAnthropic,
		SourceMistralAI,
		SourceMicrosoft,
		SourceAWS,
	}
}

// Settings carries the user-tunable state: reading level, the daily
// notification toggle, and per-source enable flags.
type Settings struct {
	Level                Level
	NotificationsEnabled bool
	NewsSources          map[Source]bool
}

// DefaultSettings starts at B1 with notifications off and every source
// enabled.
func DefaultSettings() Settings {
	sources := make(map[Source]bool, len(Sources()))
	for _, s := range Sources() {
		sources[s] = true
	}
	return Settings{
		Level:                DefaultLevel,
		NotificationsEnabled: false,
		NewsSources:          sources,
	}
}

// Clone returns a deep copy so callers never alias the stored map.
func (s Settings) Clone() Settings {
	out := s
	out.NewsSources = make(map[Source]bool, len(s.NewsSources))
	for k, v := range s.NewsSources {
		out.NewsSources[k] = v
	}
	return out
}

// SourceEnabled treats sources missing from the map as enabled, so a
// partial server payload never hides articles by accident.
func (s Settings) SourceEnabled(src Source) bool {
	enabled, ok := s.NewsSources[src]
	if !ok {
		return true
	}
	return enabled
}
