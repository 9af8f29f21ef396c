package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockerfile-analyzer/internal/types"
)

func TestExpandBuildArgsSubstitutesGlobalDefaults(t *testing.T) {
	instructions := []types.Instruction{
		{Directive: types.DirectiveArg, Argument: "PY_VERSION=3.9"},
		{Directive: types.DirectiveArg, Argument: `VARIANT="alpine"`},
		{Directive: types.DirectiveFrom, Argument: "python:${PY_VERSION}-$VARIANT AS builder"},
		{Directive: types.DirectiveRun, Argument: "echo $PY_VERSION"},
	}
	got := ExpandBuildArgs(instructions)
	require.Len(t, got, 4)
	assert.Equal(t, "python:3.9-alpine AS builder", got[2].Argument)
	assert.Equal(t, "echo $PY_VERSION", got[3].Argument)
}

func TestExpandBuildArgsIgnoresStageArgs(t *testing.T) {
	instructions := []types.Instruction{
		{Directive: types.DirectiveFrom, Argument: "alpine"},
		{Directive: types.DirectiveArg, Argument: "TAG=3.9"},
		{Directive: types.DirectiveFrom, Argument: "python:${TAG}"},
	}
	got := ExpandBuildArgs(instructions)
	assert.Equal(t, "python:${TAG}", got[2].Argument)
}

func TestExpandBuildArgsWithoutDefault(t *testing.T) {
	instructions := []types.Instruction{
		{Directive: types.DirectiveArg, Argument: "BASE"},
		{Directive: types.DirectiveFrom, Argument: "${BASE}"},
	}
	got := ExpandBuildArgs(instructions)
	assert.Equal(t, "${BASE}", got[1].Argument)
}
