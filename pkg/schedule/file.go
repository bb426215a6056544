package schedule

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// LoadFile reads a catalog from a JSON document shaped like Data
func LoadFile(fs afero.Fs, path string) (*Catalog, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading timetable: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing timetable: %w", err)
	}
	return NewCatalog(data)
}
