package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/bookexplorer/bookexplorer/internal/gutendex"
	"gopkg.in/yaml.v2"
)

// LanguageNames maps language codes to display names
type LanguageNames map[string]string

// DefaultLanguageNames returns the built-in table. It is not exhaustive;
// the catalog may return codes missing from it.
func DefaultLanguageNames() LanguageNames {
	return LanguageNames{
		"en": "English",
		"fr": "French",
		"es": "Spanish",
		"de": "German",
		"it": "Italian",
		"pt": "Portuguese",
		"ru": "Russian",
		"ja": "Japanese",
		"zh": "Chinese",
		"la": "Latin",
		"fi": "Finnish",
	}
}

// DisplayName returns the name for code, falling back to FallbackName
func (n LanguageNames) DisplayName(code string) string {
	if name, ok := n[code]; ok && name != "" {
		return name
	}
	return FallbackName(code)
}

// FallbackName renders a code with no known name
func FallbackName(code string) string {
	return strings.ToUpper(code)
}

// LoadLanguageNames reads a YAML mapping of code to name and layers it over
// the defaults. An empty path returns the defaults.
func LoadLanguageNames(path string) (LanguageNames, error) {
	names := DefaultLanguageNames()
	if path == "" {
		return names, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading language names: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing language names %s: %w", path, err)
	}

	for code, name := range overrides {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		names[code] = strings.TrimSpace(name)
	}

	return names, nil
}

// UniqueLanguages returns every distinct language code across books, in
// order of first appearance
func UniqueLanguages(books []gutendex.Book) []string {
	seen := make(map[string]struct{})
	codes := make([]string, 0)

	for _, book := range books {
		for _, code := range book.Languages {
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}

	return codes
}
