package core

import (
	"regexp"
	"strings"

	"dockerfile-analyzer/internal/shared"
	"dockerfile-analyzer/internal/types"
)

var (
	aptInstallPattern = regexp.MustCompile(`apt-get install\s+-y\s+(.+?)(\s+&&.*|$)`)
	pipInstallPattern = regexp.MustCompile(`(?:^|[\s/])pip3? install\s+(.+)$`)
	npmInstallPattern = regexp.MustCompile(`(?:^|[\s/])npm install\s+(.+)$`)
	gemInstallPattern = regexp.MustCompile(`(?:^|[\s/])gem install\s+(.+)$`)
)

// pipSpecifierOps is the ordered list of requirement operators. Longer
// tokens must precede shorter ones to avoid false matches.
var pipSpecifierOps = []string{"===", "==", ">=", "<=", "~=", "!=", ">", "<"}

// optionsWithValue lists install flags whose next token is an argument
// rather than a package.
var optionsWithValue = map[string]struct{}{
	"-r": {}, "--requirement": {}, "-c": {}, "--constraint": {},
	"-e": {}, "--editable": {}, "-i": {}, "--index-url": {},
	"--extra-index-url": {}, "-f": {}, "--find-links": {},
	"-t": {}, "--target": {}, "--prefix": {}, "--registry": {},
	"-s": {}, "--source": {},
}

// aptToken is one package argument of an apt-get install command.
type aptToken struct {
	raw    string
	record types.DependencyRecord
}

// scanAptInstall returns the package tokens of an "apt-get install -y"
// command. Chain artifacts ("rm", "&&") and option flags are dropped.
func scanAptInstall(command string) []aptToken {
	match := aptInstallPattern.FindStringSubmatch(command)
	if match == nil {
		return nil
	}
	var tokens []aptToken
	for _, token := range strings.Fields(match[1]) {
		token = strings.TrimSpace(token)
		if token == "rm" || token == "&&" || token == "" || strings.HasPrefix(token, "-") {
			continue
		}
		record := types.DependencyRecord{Name: token, Ecosystem: types.EcosystemApt, Source: "run:apt-get"}
		if name, version, ok := strings.Cut(token, "="); ok && name != "" && version != "" {
			record.Name = name
			record.Version = version
		}
		tokens = append(tokens, aptToken{raw: token, record: record})
	}
	return tokens
}

// scanScriptInstalls returns the packages named on pip, npm and gem
// install command lines.
func scanScriptInstalls(command string) []types.DependencyRecord {
	var records []types.DependencyRecord
	if match := pipInstallPattern.FindStringSubmatch(command); match != nil {
		for _, token := range installArguments(match[1]) {
			if record, ok := pipRequirement(token); ok {
				records = append(records, record)
			}
		}
	}
	if match := npmInstallPattern.FindStringSubmatch(command); match != nil {
		for _, token := range installArguments(match[1]) {
			record := ParseRecord(token)
			record.Ecosystem = types.EcosystemNpm
			record.Source = "run:npm"
			records = append(records, record)
		}
	}
	if match := gemInstallPattern.FindStringSubmatch(command); match != nil {
		records = append(records, gemRequirements(match[1])...)
	}
	return records
}

// installArguments splits the argument list of an install command into
// package tokens, stopping at the first shell operator.
func installArguments(args string) []string {
	var tokens []string
	skipNext := false
	for _, token := range strings.Fields(args) {
		if skipNext {
			skipNext = false
			continue
		}
		if isShellOperator(token) {
			break
		}
		if strings.HasPrefix(token, "-") {
			if _, ok := optionsWithValue[token]; ok {
				skipNext = true
			}
			continue
		}
		token = strings.Trim(token, `"'`)
		if token == "" || isPathLike(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func pipRequirement(token string) (types.DependencyRecord, bool) {
	record := types.DependencyRecord{Name: token, Ecosystem: types.EcosystemPip, Source: "run:pip"}
	for _, op := range pipSpecifierOps {
		if name, version, ok := strings.Cut(token, op); ok {
			record.Name = name
			if op == "==" || op == "===" {
				record.Version = strings.TrimSpace(version)
			}
			break
		}
	}
	if idx := strings.Index(record.Name, "["); idx >= 0 {
		record.Name = record.Name[:idx]
	}
	record.Name = shared.NormalizePipName(record.Name)
	if record.Name == "" {
		return types.DependencyRecord{}, false
	}
	return record, true
}

// gemRequirements handles "gem install rails -v 7.0.4" as well as the
// "name:version" shorthand.
func gemRequirements(args string) []types.DependencyRecord {
	var records []types.DependencyRecord
	fields := strings.Fields(args)
	for i := 0; i < len(fields); i++ {
		token := fields[i]
		if isShellOperator(token) {
			break
		}
		if token == "-v" || token == "--version" {
			if i+1 < len(fields) && len(records) > 0 {
				records[len(records)-1].Version = strings.Trim(fields[i+1], `"'`)
			}
			i++
			continue
		}
		if strings.HasPrefix(token, "-") {
			if _, ok := optionsWithValue[token]; ok {
				i++
			}
			continue
		}
		record := ParseRecord(strings.Trim(token, `"'`))
		if record.Name == "" {
			continue
		}
		record.Ecosystem = types.EcosystemGem
		record.Source = "run:gem"
		records = append(records, record)
	}
	return records
}

func isShellOperator(token string) bool {
	switch token {
	case "&&", "||", ";", "|", "&":
		return true
	}
	return strings.HasPrefix(token, ">") || strings.HasPrefix(token, "2>") || strings.HasSuffix(token, ";")
}

func isPathLike(token string) bool {
	return token == "." || strings.HasPrefix(token, "./") || strings.HasPrefix(token, "/") ||
		strings.HasPrefix(token, "../") || strings.Contains(token, "://")
}
