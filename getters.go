package stratum

import (
	"fmt"
	"time"

	"github.com/stratumcfg/stratum/coerce"
)

func coerceLike(raw, sample any) (any, error) {
	return coerce.Like(raw, sample)
}

// GetKind resolves the path and coerces the value to an explicitly requested
// kind, regardless of what any typed layer would infer.
func (c *Config) GetKind(path string, k coerce.Kind) (any, error) {
	p := c.abs(path)
	rv, err := c.stack.resolve(p)
	if err != nil {
		return nil, err
	}
	v, err := coerce.Coerce(rv.Value, k)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", p.String(), err)
	}
	return v, nil
}

// GetString resolves the path as a string; typed values are rendered in
// their canonical string form.
func (c *Config) GetString(path string) (string, error) {
	v, err := c.GetKind(path, coerce.String)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// GetBool resolves the path as a boolean. Raw strings accept true/false,
// yes/no, and 1/0, case-insensitively.
func (c *Config) GetBool(path string) (bool, error) {
	v, err := c.GetKind(path, coerce.Bool)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// GetInt resolves the path as an integer.
func (c *Config) GetInt(path string) (int, error) {
	v, err := c.GetKind(path, coerce.Int)
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// GetFloat resolves the path as a float64.
func (c *Config) GetFloat(path string) (float64, error) {
	v, err := c.GetKind(path, coerce.Float)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// GetTime resolves the path as a timestamp in the canonical
// "2006-01-02 15:04:05" form, or the date-only "2006-01-02" form.
func (c *Config) GetTime(path string) (time.Time, error) {
	v, err := c.GetKind(path, coerce.DateTime)
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

// GetDuration resolves the path as a Go duration string such as "1m30s".
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, err := c.GetKind(path, coerce.Duration)
	if err != nil {
		return 0, err
	}
	return v.(time.Duration), nil
}

// GetStringSlice resolves the path as a list of strings; raw strings split
// on commas.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, err := c.GetKind(path, coerce.StringList)
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// GetIntSlice resolves the path as a list of integers.
func (c *Config) GetIntSlice(path string) ([]int, error) {
	v, err := c.GetKind(path, coerce.IntList)
	if err != nil {
		return nil, err
	}
	return v.([]int), nil
}
