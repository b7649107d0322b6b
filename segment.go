package trellis

import "strings"

// SegmentType distinguishes literal path components from captures.
type SegmentType uint8

const (
	// SegmentStatic matches exactly one path component by name.
	SegmentStatic SegmentType = iota
	// SegmentDynamic matches any single path component and binds its
	// value under the segment name.
	SegmentDynamic
)

// Segment is one /-delimited component of a route path. Name and type
// together form a node's identity, so the static segment "users" and
// the capture ":users" can coexist as siblings.
type Segment struct {
	Name string
	Type SegmentType
}

// parseSegment interprets a registration path component. A leading ':'
// denotes a dynamic capture bound under the stripped name.
func parseSegment(raw string) Segment {
	if strings.HasPrefix(raw, ":") {
		return Segment{Name: raw[1:], Type: SegmentDynamic}
	}
	return Segment{Name: raw, Type: SegmentStatic}
}

// splitPath normalizes a path into its segments. The leading slash is
// stripped so "/" and "" address the same root node; empty components
// from doubled or trailing slashes are dropped. Registration and
// lookup both go through here, keeping their keys equivalent.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}

	segments := make([]string, 0, strings.Count(path, "/")+1)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	return segments
}
