package team

import (
	"strings"

	"github.com/foxsportsgoon/goonbot/internal/platform/textnorm"
)

type aliasEntry struct {
	alias     string
	canonical string
}

// AliasMap resolves free-text team mentions to canonical team names. It is
// built once at startup from the profile list and never mutated afterwards,
// so it is safe to share between requests without locking.
//
// Entries keep insertion order: when several aliases are substrings of the
// same input, the first inserted matching alias wins.
type AliasMap struct {
	entries []aliasEntry
	seen    map[string]struct{}
}

// NewAliasMap indexes every official name and alias under its canonical team
// name. Aliases are stored in normalized form; duplicates keep the first
// canonical name they were inserted with.
func NewAliasMap(profiles []Profile) *AliasMap {
	m := &AliasMap{seen: make(map[string]struct{})}
	for _, profile := range profiles {
		if profile.Team == "" {
			continue
		}
		m.add(profile.Team, profile.Team)
		for _, alias := range profile.Aliases {
			m.add(alias, profile.Team)
		}
	}
	return m
}

func (m *AliasMap) add(alias, canonical string) {
	normalized := textnorm.Normalize(alias)
	if normalized == "" {
		return
	}
	if _, dup := m.seen[normalized]; dup {
		return
	}
	m.seen[normalized] = struct{}{}
	m.entries = append(m.entries, aliasEntry{alias: normalized, canonical: canonical})
}

// Resolve scans the normalized input for any known alias as a substring and
// returns the canonical team name. The substring test is what lets a casual
// mention like "anyone see tigers last night" hit "Tigers FC". The boolean is
// false when no alias matches.
func (m *AliasMap) Resolve(text string) (string, bool) {
	if m == nil {
		return "", false
	}
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return "", false
	}
	for _, entry := range m.entries {
		if strings.Contains(normalized, entry.alias) {
			return entry.canonical, true
		}
	}
	return "", false
}

// Len reports how many distinct aliases are indexed.
func (m *AliasMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
