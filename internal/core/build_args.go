package core

import (
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/shell"

	"dockerfile-analyzer/internal/types"
)

// ExpandBuildArgs substitutes the defaults of global ARGs (those declared
// before the first FROM) into FROM references, so that
// "ARG PY=3.9" + "FROM python:${PY}-alpine" classifies as python:3.9-alpine.
// References the lexer cannot expand are left untouched.
func ExpandBuildArgs(instructions []types.Instruction) []types.Instruction {
	var globals []string
	seenFrom := false
	lex := shell.NewLex('\\')
	out := make([]types.Instruction, 0, len(instructions))
	for _, instruction := range instructions {
		switch instruction.Directive {
		case types.DirectiveArg:
			if !seenFrom {
				globals = append(globals, argDefaults(instruction.Argument)...)
			}
		case types.DirectiveFrom:
			seenFrom = true
			fields := strings.Fields(instruction.Argument)
			if len(globals) > 0 && len(fields) > 0 && strings.Contains(fields[0], "$") {
				expanded, _, err := lex.ProcessWord(fields[0], shell.EnvsFromSlice(globals))
				if err == nil && expanded != "" {
					fields[0] = expanded
					instruction.Argument = strings.Join(fields, " ")
				}
			}
		}
		out = append(out, instruction)
	}
	return out
}

// argDefaults returns KEY=value pairs for the ARG declarations that carry
// a default value.
func argDefaults(argument string) []string {
	var pairs []string
	for _, field := range strings.Fields(argument) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			continue
		}
		pairs = append(pairs, key+"="+strings.Trim(value, `"'`))
	}
	return pairs
}
