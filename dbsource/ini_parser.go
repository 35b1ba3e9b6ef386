package dbsource

import (
	"gopkg.in/ini.v1"
)

// INIParser is the default ConfigParser. Each [section] of an INI file
// names one database source; the key = value lines within it become the
// source's fields. Key case is preserved as written.
type INIParser struct{}

// Parse reads path as an INI file and returns its sections. Keys
// outside any [section] header are ignored: a source must be named.
func (INIParser) Parse(path string) (map[string]map[string]string, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]map[string]string)

	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		parsed[section.Name()] = section.KeysHash()
	}

	return parsed, nil
}
