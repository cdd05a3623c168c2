package tree

import (
	"strconv"
	"time"
)

// Kind is the type of a node.
type Kind string

const (
	KindBranch Kind = "branch"
	KindLeaf   Kind = "leaf"
	KindLink   Kind = "link"
)

// Meta holds the metadata hash of a node.
type Meta struct {
	Kind   Kind
	Size   int64
	CTime  int64 // creation time (unix timestamp)
	MTime  int64 // modification time
	ATime  int64 // access time
	Target string
}

func newMeta(kind Kind) *Meta {
	now := time.Now().Unix()
	return &Meta{Kind: kind, CTime: now, MTime: now, ATime: now}
}

// NewBranchMeta creates metadata for a new branch.
func NewBranchMeta() *Meta {
	return newMeta(KindBranch)
}

// NewLeafMeta creates metadata for a new leaf holding size bytes.
func NewLeafMeta(size int64) *Meta {
	m := newMeta(KindLeaf)
	m.Size = size
	return m
}

// NewLinkMeta creates metadata for a link to target.
func NewLinkMeta(target string) *Meta {
	m := newMeta(KindLink)
	m.Target = target
	return m
}

// IsBranch reports whether m describes a branch.
func (m *Meta) IsBranch() bool {
	return m != nil && m.Kind == KindBranch
}

// ToMap converts metadata to a map for HSET.
func (m *Meta) ToMap() map[string]interface{} {
	result := map[string]interface{}{
		"kind":  string(m.Kind),
		"size":  strconv.FormatInt(m.Size, 10),
		"ctime": strconv.FormatInt(m.CTime, 10),
		"mtime": strconv.FormatInt(m.MTime, 10),
		"atime": strconv.FormatInt(m.ATime, 10),
	}
	if m.Target != "" {
		result["target"] = m.Target
	}
	return result
}

// MetaFromMap parses a metadata hash. It returns nil for an empty map.
func MetaFromMap(m map[string]string) *Meta {
	if len(m) == 0 {
		return nil
	}
	size, _ := strconv.ParseInt(m["size"], 10, 64)
	ctime, _ := strconv.ParseInt(m["ctime"], 10, 64)
	mtime, _ := strconv.ParseInt(m["mtime"], 10, 64)
	atime, _ := strconv.ParseInt(m["atime"], 10, 64)

	return &Meta{
		Kind:   Kind(m["kind"]),
		Size:   size,
		CTime:  ctime,
		MTime:  mtime,
		ATime:  atime,
		Target: m["target"],
	}
}

// FormatTime formats a unix timestamp for display.
func FormatTime(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("Jan _2 15:04")
}

// KindLetter returns the one-letter marker used in long listings.
func (m *Meta) KindLetter() byte {
	switch m.Kind {
	case KindBranch:
		return 'b'
	case KindLink:
		return 'l'
	default:
		return '-'
	}
}
