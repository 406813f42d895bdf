package moderation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// builtinKeywords is the fixed sensitive-keyword list (Vietnamese and
// English). Matching is substring-based, not word-boundary-aware; short
// entries like "vl" deliberately match inside longer words.
var builtinKeywords = []string{
	"ngu", "đần", "dốt", "khốn", "đồ chó", "mày", "tao", "con chó",
	"địt", "đm", "vcl", "vl", "clm", "đéo", "lồn", "cặc", "buồi",
	"đĩ", "cave", "điếm",
	"fuck", "shit", "damn", "stupid", "idiot", "trash", "garbage",
	"suck", "hate", "terrible", "worst", "scam", "fake", "spam",
}

// Keywords combines the immutable built-in list with the admin's custom
// additions. It is passed explicitly into classification so the filter
// stays pure with respect to its inputs.
type Keywords struct {
	custom []string
}

func NewKeywords(custom []string) *Keywords {
	k := &Keywords{}
	for _, word := range custom {
		k.custom = append(k.custom, strings.ToLower(word))
	}
	return k
}

// All returns the combined built-in plus custom list.
func (k *Keywords) All() []string {
	all := make([]string, 0, len(builtinKeywords)+len(k.custom))
	all = append(all, builtinKeywords...)
	all = append(all, k.custom...)
	return all
}

func (k *Keywords) Custom() []string {
	return append([]string(nil), k.custom...)
}

// Add normalizes the keyword to lower case and appends it to the custom
// list. Adding a word already present anywhere in the combined list is
// a no-op; Add reports whether the list changed.
func (k *Keywords) Add(keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return false
	}
	for _, existing := range k.All() {
		if existing == keyword {
			return false
		}
	}
	k.custom = append(k.custom, keyword)
	return true
}

// Remove drops a keyword from the custom list. Built-in keywords are
// immutable at runtime; removing one has no effect.
func (k *Keywords) Remove(keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	for i, existing := range k.custom {
		if existing == keyword {
			k.custom = append(k.custom[:i], k.custom[i+1:]...)
			return true
		}
	}
	return false
}

// IsSensitive reports whether content contains any combined keyword as
// a case-folded substring.
func (k *Keywords) IsSensitive(content string) bool {
	if content == "" {
		return false
	}
	lower := strings.ToLower(content)
	for _, keyword := range k.All() {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// KeywordStore persists the custom keyword list as a JSON file, the
// backend analogue of the admin screen's local storage. It is read once
// at startup and rewritten on every add or remove.
type KeywordStore struct {
	path string
}

func NewKeywordStore(path string) *KeywordStore {
	return &KeywordStore{path: path}
}

func (s *KeywordStore) Load() (*Keywords, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewKeywords(nil), nil
		}
		return nil, fmt.Errorf("read keyword file: %w", err)
	}

	var custom []string
	if err := json.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("parse keyword file: %w", err)
	}
	return NewKeywords(custom), nil
}

func (s *KeywordStore) Save(k *Keywords) error {
	data, err := json.Marshal(k.Custom())
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write keyword file: %w", err)
	}
	return nil
}
