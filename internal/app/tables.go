package app

import (
	"dockerfile-analyzer/internal/core"
	"dockerfile-analyzer/internal/types"
)

// Tables returns the language version inference table.
func (s Service) Tables() []types.LanguageVersionEntry {
	return core.NewVersionTable().Entries()
}
