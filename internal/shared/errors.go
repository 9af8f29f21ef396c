package shared

import (
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	malformedBuildFilePrefix = "malformed build file"
	manifestParsePrefix      = "failed to parse "
)

// MalformedBuildFile reports a build file that cannot be classified at
// all: the grammar parser rejected it or it uses an unknown directive.
func MalformedBuildFile(detail string, cause error) error {
	msg := malformedBuildFilePrefix
	if strings.TrimSpace(detail) != "" {
		msg += ": " + detail
	}
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

// ManifestParseError reports a structurally broken manifest. It is only
// fatal to the extraction of that one manifest.
func ManifestParseError(manifest string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(manifestParsePrefix + manifest).
		WithCause(cause)
}

func IsMalformedBuildFile(err error) bool {
	return hasMessagePrefix(err, malformedBuildFilePrefix)
}

func IsManifestParseError(err error) bool {
	return hasMessagePrefix(err, manifestParsePrefix)
}

func hasMessagePrefix(err error, prefix string) bool {
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) {
		return false
	}
	return strings.HasPrefix(builder.Msg, prefix)
}
