package slidedat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/afero"

	"github.com/arloliu/mirax/errs"
)

// FileName is the name of the configuration file inside a slide directory.
const FileName = "Slidedat.ini"

// File is a parsed Slidedat.ini.
//
// Section names are case-sensitive, key names are not.
type File struct {
	cfg *ini.File
}

// Load reads and parses a configuration file from fs.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read slide configuration: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration text. A leading UTF-8 byte order mark is ignored.
func Parse(data []byte) (*File, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:          true,
		SpaceBeforeInlineComment: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("parse slide configuration: %w", err)
	}

	return &File{cfg: cfg}, nil
}

// HasSection reports whether the named section exists.
func (f *File) HasSection(section string) bool {
	return f.cfg.HasSection(section)
}

// GetString returns the raw value of key in section.
func (f *File) GetString(section, key string) (string, error) {
	sec, err := f.cfg.GetSection(section)
	if err != nil {
		return "", &errs.KeyNotFoundError{Section: section}
	}

	k, err := sec.GetKey(key)
	if err != nil {
		return "", &errs.KeyNotFoundError{Section: section, Key: key}
	}

	return k.String(), nil
}

// GetInt returns key in section as a base-10 integer.
func (f *File) GetInt(section, key string) (int, error) {
	s, err := f.GetString(section, key)
	if err != nil {
		return 0, err
	}

	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("[%s] %s: %w", section, key, err)
	}

	return v, nil
}

// GetFloat returns key in section as a float64.
func (f *File) GetFloat(section, key string) (float64, error) {
	s, err := f.GetString(section, key)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("[%s] %s: %w", section, key, err)
	}

	return v, nil
}

// GetStringDefault returns the value of key, or def if the section or key is missing.
func (f *File) GetStringDefault(section, key, def string) (string, error) {
	v, err := f.GetString(section, key)
	if errs.IsKeyNotFound(err) {
		return def, nil
	}

	return v, err
}

// GetIntDefault returns key as an integer, or def if the section or key is missing.
// A present but malformed value is still an error.
func (f *File) GetIntDefault(section, key string, def int) (int, error) {
	v, err := f.GetInt(section, key)
	if errs.IsKeyNotFound(err) {
		return def, nil
	}

	return v, err
}
