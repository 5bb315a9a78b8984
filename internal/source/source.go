// Package source materializes FileRecord lists for the analysis engine from
// a local directory, a remote repository tree, or a downloaded archive. The
// engine itself never performs I/O; every cap and filter lives here.
package source

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultMaxFileSize = 1 << 20 // 1 MiB
	defaultMaxFiles    = 2000
)

// Options bounds how many files, how large, and which extensions are handed
// to the engine. Zero values fall back to defaults; an include list, when
// set, wins over the exclude list being empty.
type Options struct {
	MaxFileSize       int64
	MaxFiles          int
	IncludeExtensions []string
	ExcludeExtensions []string
}

func (o Options) maxFileSize() int64 {
	if o.MaxFileSize > 0 {
		return o.MaxFileSize
	}
	return defaultMaxFileSize
}

func (o Options) maxFiles() int {
	if o.MaxFiles > 0 {
		return o.MaxFiles
	}
	return defaultMaxFiles
}

// allows reports whether a file with this name and size passes the
// extension and size filters.
func (o Options) allows(name string, size int64) bool {
	if size > o.maxFileSize() {
		return false
	}

	ext := extensionOf(name)
	if len(o.IncludeExtensions) > 0 {
		return containsFold(o.IncludeExtensions, ext)
	}
	return !containsFold(o.ExcludeExtensions, ext)
}

func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimPrefix(item, "."), value) {
			return true
		}
	}
	return false
}

// isTextContent filters out binaries: anything with a NUL byte or invalid
// UTF-8 in its head is skipped, matching what a text analysis can use.
func isTextContent(data []byte) bool {
	head := data
	if len(head) > 8000 {
		head = head[:8000]
	}
	if len(head) == 0 {
		return true
	}
	for _, b := range head {
		if b == 0 {
			return false
		}
	}
	// the head may end mid-rune when it was cut at the size limit
	for trim := 0; trim < 4 && trim < len(head); trim++ {
		if utf8.Valid(head[:len(head)-trim]) {
			return true
		}
	}
	return false
}
