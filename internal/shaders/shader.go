package shaders

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

// Sources carry no #version line; the GL context supplies one.

//go:embed field.vert.glsl
var FieldVertex string

//go:embed field.frag.glsl
var FieldFragment string

// Fragment returns the fragment source to use: the file at path when one
// is given, the embedded field program otherwise.
func Fragment(path string) (string, error) {
	if path == "" {
		return FieldFragment, nil
	}
	return ReadFromFile(path)
}

// ReadFromFile loads shader source, dropping any #version directive and
// trailing NUL so the context header stays authoritative.
func ReadFromFile(path string) (string, error) {
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader file %q: %w", path, err)
	}

	source := strings.TrimRight(string(sourceBytes), "\x00")

	lines := strings.Split(source, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#version") {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n"), nil
}
