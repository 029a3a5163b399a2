// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Supported content locales. Russian is the default locale: every
// translatable value is expected to carry at least its Russian text.
const (
	LocaleRU = "ru"
	LocaleBE = "be"
	LocaleEN = "en"

	DefaultLocale = LocaleRU
)

// SupportedLocales lists the locales in fallback order.
var SupportedLocales = []string{LocaleRU, LocaleBE, LocaleEN}

// IsSupportedLocale reports whether locale is one of [SupportedLocales].
func IsSupportedLocale(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// Translatable is a per-locale text value, stored as a JSON object
// (e.g. {"ru": "Информация", "en": "Information"}).
type Translatable map[string]string

// NewTranslatable returns a Translatable holding a single default-locale text.
func NewTranslatable(text string) Translatable {
	return Translatable{DefaultLocale: text}
}

// Get returns the text for locale, falling back to the default locale.
// An empty string is returned when neither is present.
func (t Translatable) Get(locale string) string {
	return t.Resolve(locale, "")
}

// Resolve returns the text for locale. When the locale has no text it tries
// the default locale, then any other supported locale, and finally returns
// fallback.
func (t Translatable) Resolve(locale, fallback string) string {
	if v := t[locale]; v != "" {
		return v
	}
	if v := t[DefaultLocale]; v != "" {
		return v
	}
	for _, l := range SupportedLocales {
		if v := t[l]; v != "" {
			return v
		}
	}
	return fallback
}

// IsEmpty reports whether no locale carries a non-empty text.
func (t Translatable) IsEmpty() bool {
	for _, v := range t {
		if v != "" {
			return false
		}
	}
	return true
}

// Value implements [driver.Valuer]. A nil map is stored as an empty object.
func (t Translatable) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(t))
	if err != nil {
		return nil, fmt.Errorf("error encoding translatable value: %w", err)
	}
	return string(b), nil
}

// Scan implements [sql.Scanner] for JSON/JSONB and TEXT columns.
func (t *Translatable) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Translatable{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for translatable value", src)
	}

	if len(raw) == 0 {
		*t = Translatable{}
		return nil
	}

	m := make(map[string]string)
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("error decoding translatable value: %w", err)
	}
	*t = m
	return nil
}
