// Package filename classifies the last segment of a path as a file or a
// folder name.
package filename

import "strings"

// Kind is the classification of a name.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Classify returns KindFile when name contains a dot after its first
// character, KindFolder otherwise. Dot-files such as ".git" are folders.
func Classify(name string) Kind {
	if strings.LastIndexByte(name, '.') > 0 {
		return KindFile
	}
	return KindFolder
}

// IsFile reports whether Classify(name) is KindFile.
func IsFile(name string) bool {
	return Classify(name) == KindFile
}

// Extension returns the text after the last dot of a file name, or "" for
// folder names.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}
