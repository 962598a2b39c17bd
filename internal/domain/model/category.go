package model

import "doralyzer/internal/i18n"

// Category groups questions of the DORA catalog, e.g. "ICT Risk Management".
type Category struct {
	ID   int       `json:"id"`
	Name i18n.Text `json:"name"`
}
