// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language text directions
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Language is a content language code from the closed set the site publishes in.
type Language string

// Supported content languages.
const (
	LanguagePersian Language = "fa"
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// Languages lists the supported content languages in reconcile order.
var Languages = []Language{LanguagePersian, LanguageEnglish, LanguageArabic}

var (
	languageTags    = []language.Tag{language.Persian, language.English, language.Arabic}
	languageMatcher = language.NewMatcher(languageTags)
)

// LanguageInfo describes a supported language for display purposes.
type LanguageInfo struct {
	Code       Language `json:"code"`
	Name       string   `json:"name"`
	NativeName string   `json:"native_name"`
	Direction  string   `json:"direction"`
}

var languageInfo = map[Language]LanguageInfo{
	LanguagePersian: {LanguagePersian, "Persian", "فارسی", DirectionRTL},
	LanguageEnglish: {LanguageEnglish, "English", "English", DirectionLTR},
	LanguageArabic:  {LanguageArabic, "Arabic", "العربية", DirectionRTL},
}

// IsValid reports whether l is one of the supported content languages.
func (l Language) IsValid() bool {
	_, ok := languageInfo[l]
	return ok
}

// Info returns display information for the language.
func (l Language) Info() LanguageInfo {
	return languageInfo[l]
}

// IsRTL returns true if the language is right-to-left.
func (l Language) IsRTL() bool {
	return languageInfo[l].Direction == DirectionRTL
}

func (l Language) String() string {
	return string(l)
}

// ParseLanguage resolves a BCP 47 code such as "en", "EN" or "fa-IR" to a
// supported content language. Codes that do not match any supported language
// are rejected.
func ParseLanguage(code string) (Language, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("empty language code")
	}
	if l := Language(strings.ToLower(code)); l.IsValid() {
		return l, nil
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}

	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(Languages) {
		return "", fmt.Errorf("unsupported language %q", code)
	}
	return Languages[idx], nil
}
