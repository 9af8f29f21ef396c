package types

type DependencyRecord struct {
	Name      string
	Version   string
	Ecosystem Ecosystem
	Source    string
}

func (r DependencyRecord) String() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "==" + r.Version
}

// Coordinate renders the record in the notation of its own ecosystem,
// e.g. group:artifact:version for Maven or name@version for npm.
func (r DependencyRecord) Coordinate() string {
	if r.Version == "" {
		return r.Name
	}
	switch r.Ecosystem {
	case EcosystemMaven:
		return r.Name + ":" + r.Version
	case EcosystemNpm:
		return r.Name + "@" + r.Version
	case EcosystemApt:
		return r.Name + "=" + r.Version
	default:
		return r.Name + "==" + r.Version
	}
}

type ManifestFile struct {
	Language string
	Path     string
	Format   ManifestFormat
}
