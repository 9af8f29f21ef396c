package core

import (
	"strings"

	"github.com/Masterminds/semver"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"dockerfile-analyzer/internal/types"
)

// versionCache memoizes parsed version objects so repeated comparisons
// during a merge parse each string once per ecosystem.
type versionCache struct {
	deb    map[string]debversion.Version
	pep    map[string]pep440.Version
	semver map[string]*semver.Version
}

func newVersionCache() *versionCache {
	return &versionCache{
		deb:    map[string]debversion.Version{},
		pep:    map[string]pep440.Version{},
		semver: map[string]*semver.Version{},
	}
}

// debVersion returns a parsed Debian version, caching the result.
func (c *versionCache) debVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, err
	}
	c.deb[value] = parsed
	return parsed, nil
}

// pepVersion returns a parsed PEP 440 version, caching the result.
func (c *versionCache) pepVersion(value string) (pep440.Version, error) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.pep[value] = parsed
	return parsed, nil
}

// semverVersion parses an npm version, ignoring a leading range operator
// such as ^ or ~ since package.json entries are usually ranges.
func (c *versionCache) semverVersion(value string) (*semver.Version, error) {
	if parsed, ok := c.semver[value]; ok {
		return parsed, nil
	}
	trimmed := strings.TrimLeft(strings.TrimSpace(value), "^~=<>v ")
	parsed, err := semver.NewVersion(trimmed)
	if err != nil {
		return nil, err
	}
	c.semver[value] = parsed
	return parsed, nil
}

// compareNative compares with the ecosystem's own version semantics. ok is
// false when the ecosystem has none or either side fails to parse.
func (c *versionCache) compareNative(ecosystem types.Ecosystem, a string, b string) (int, bool) {
	switch ecosystem {
	case types.EcosystemApt:
		v1, err := c.debVersion(a)
		if err != nil {
			return 0, false
		}
		v2, err := c.debVersion(b)
		if err != nil {
			return 0, false
		}
		return v1.Compare(v2), true
	case types.EcosystemPip:
		v1, err := c.pepVersion(a)
		if err != nil {
			return 0, false
		}
		v2, err := c.pepVersion(b)
		if err != nil {
			return 0, false
		}
		return v1.Compare(v2), true
	case types.EcosystemNpm:
		v1, err := c.semverVersion(a)
		if err != nil {
			return 0, false
		}
		v2, err := c.semverVersion(b)
		if err != nil {
			return 0, false
		}
		return v1.Compare(v2), true
	default:
		return 0, false
	}
}

// compare returns -1, 0, or 1. Native semantics win when both sides parse;
// otherwise the normalized numeric components decide, then plain string
// order so the result is total and deterministic.
func (c *versionCache) compare(ecosystem types.Ecosystem, a string, b string) int {
	if result, ok := c.compareNative(ecosystem, a, b); ok {
		return sign(result)
	}
	if result := CompareNormalized(a, b); result != 0 {
		return result
	}
	return strings.Compare(a, b)
}

func sign(value int) int {
	switch {
	case value < 0:
		return -1
	case value > 0:
		return 1
	default:
		return 0
	}
}
