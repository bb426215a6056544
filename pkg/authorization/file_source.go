package authorization

import (
	"encoding/json"
	"fmt"

	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/spf13/afero"
)

// FileSource reads per-screen role overrides from a JSON file and applies
// them to a base table. The file maps screen names to allow-lists:
//
//	{"dashboard": ["student", "teacher"], "bus-details": ["student", "staff"]}
//
// Screens missing from the file keep their base allow-list. Public screens
// cannot be restricted this way, and admin-only screens only accept
// ["admin"].
type FileSource struct {
	fs       afero.Fs
	filePath string
	base     []Screen
}

// NewFileSource creates a source over filePath with DefaultScreens as base
func NewFileSource(fs afero.Fs, filePath string) *FileSource {
	return &FileSource{
		fs:       fs,
		filePath: filePath,
		base:     DefaultScreens(),
	}
}

// LoadScreens implements ScreenSource
func (s *FileSource) LoadScreens() ([]Screen, error) {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		return nil, fmt.Errorf("reading screen overrides: %w", err)
	}

	var overrides map[string][]accounts.Role
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing screen overrides: %w", err)
	}

	screens := make([]Screen, len(s.base))
	copy(screens, s.base)

	for name, roles := range overrides {
		found := false
		for i := range screens {
			if screens[i].Name != name {
				continue
			}
			if screens[i].Public {
				return nil, fmt.Errorf("screen %q is public", name)
			}
			screens[i].Roles = append([]accounts.Role(nil), roles...)
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("unknown screen %q", name)
		}
	}
	return screens, nil
}
