package team

import (
	"fmt"
	"os"

	sonic "github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// Profile describes one known team from the static profile file: the official
// name plus the casual aliases the chat crowd uses for it.
type Profile struct {
	Team    string   `json:"team"`
	Aliases []string `json:"team_alias"`
}

// LoadProfiles reads the profile file (a JSON object keyed by owner, each
// value carrying "team" and "team_alias") and returns the profiles in file
// order. Document order matters: alias resolution ties go to the earliest
// profile.
func LoadProfiles(path string) ([]Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	return ParseProfiles(raw)
}

// ParseProfiles decodes the profile document, walking object keys in
// document order. Entries without a team name are skipped.
func ParseProfiles(raw []byte) ([]Profile, error) {
	root, err := sonic.Get(raw)
	if err != nil {
		return nil, fmt.Errorf("parse profiles file: %w", err)
	}

	var profiles []Profile
	walkErr := root.ForEach(func(_ ast.Sequence, node *ast.Node) bool {
		rawProfile, err := node.Raw()
		if err != nil {
			return true
		}
		var profile Profile
		if err := sonic.UnmarshalString(rawProfile, &profile); err != nil {
			return true
		}
		if profile.Team == "" {
			return true
		}
		profiles = append(profiles, profile)
		return true
	})
	if walkErr != nil {
		return nil, fmt.Errorf("decode profiles file: %w", walkErr)
	}

	return profiles, nil
}
