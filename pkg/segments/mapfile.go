package segments

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MapFile is the YAML segment mapping file used for non-interactive runs.
//
//	segments:
//	  40: Acme-Devices
//	  1000: Internet-Only
//	default_segment: Quarantine
//	exclude_macs:
//	  - "00:18:0a:*:*:*"
type MapFile struct {
	Segments       map[int]string `yaml:"segments"`
	DefaultSegment string         `yaml:"default_segment"`
	ExcludeMACs    []string       `yaml:"exclude_macs"`
}

// LoadMapFile loads and validates a YAML segment mapping file.
func LoadMapFile(path string) (*MapFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read segment map %s: %w", path, err)
	}
	var mf MapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse segment map %s: %w", path, err)
	}
	for vlan, name := range mf.Segments {
		if vlan < 1 || vlan > 4094 {
			return nil, fmt.Errorf("segment map %s: VLAN %d out of range 1-4094", path, vlan)
		}
		if name == "" {
			return nil, fmt.Errorf("segment map %s: VLAN %d has an empty segment name", path, vlan)
		}
	}
	return &mf, nil
}

// ResolveSegment returns the configured segment name for a VLAN, falling back
// to DefaultSegment when set. A VLAN absent from the file with no default is
// an error, so batch runs fail the same coverage check interactive runs do.
func (mf *MapFile) ResolveSegment(vlan int) (string, error) {
	if name, ok := mf.Segments[vlan]; ok {
		return name, nil
	}
	if mf.DefaultSegment != "" {
		return mf.DefaultSegment, nil
	}
	return "", fmt.Errorf("VLAN %d not present in segment map and no default_segment set", vlan)
}
