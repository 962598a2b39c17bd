package i18n

// Locale selects one of the two supported languages. It is an opaque
// selector: the application never translates, it only picks a column.
type Locale string

const (
	EN Locale = "en"
	ES Locale = "es"
)

// ParseLocale maps a config/user value onto a supported locale.
// Anything unrecognized falls back to English.
func ParseLocale(s string) Locale {
	if s == string(ES) {
		return ES
	}
	return EN
}

// Toggle returns the other supported locale.
func Toggle(loc Locale) Locale {
	if loc == ES {
		return EN
	}
	return ES
}

// Text is a user-facing string in both supported locales.
type Text struct {
	EN string `json:"en" yaml:"en"`
	ES string `json:"es" yaml:"es"`
}

// In returns the rendering for the given locale.
func (t Text) In(loc Locale) string {
	if loc == ES && t.ES != "" {
		return t.ES
	}
	return t.EN
}
