/*
  File: sourcemap.go
  Purpose: Source Map V3 construction with base64 VLQ mappings.
  Author: taikocss project
  Notes: Shared by the JS rewriter and the CSS processor. Mappings must be
         appended in generated order; the builder handles delta encoding.
*/

package sourcemap

import (
	"encoding/json"
	"fmt"
	"strings"
)

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Mapping locates one generated position in one original source. All fields
// are 0-based, per the V3 format.
type Mapping struct {
	GeneratedLine   int
	GeneratedColumn int
	OriginalLine    int
	OriginalColumn  int
}

// Builder accumulates mappings for a single-source map.
type Builder struct {
	file     string
	source   string
	content  string
	mappings []Mapping
}

// NewBuilder creates a builder for a map with one original source. content
// is embedded as sourcesContent when non-empty.
func NewBuilder(file, source, content string) *Builder {
	return &Builder{file: file, source: source, content: content}
}

// AddMapping appends one segment. Calls must arrive in generated order
// (line, then column).
func (b *Builder) AddMapping(m Mapping) {
	b.mappings = append(b.mappings, m)
}

// Len returns the number of accumulated mappings.
func (b *Builder) Len() int {
	return len(b.mappings)
}

// jsonMap is the serialized V3 document.
type jsonMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// String serializes the map as V3 JSON.
func (b *Builder) String() (string, error) {
	doc := jsonMap{
		Version:  3,
		File:     b.file,
		Sources:  []string{b.source},
		Names:    []string{},
		Mappings: encodeMappings(b.mappings),
	}
	if b.content != "" {
		doc.SourcesContent = []string{b.content}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize source map: %w", err)
	}
	return string(out), nil
}

// encodeMappings delta-encodes segments into the V3 mappings string.
func encodeMappings(mappings []Mapping) string {
	var sb strings.Builder
	prevGenLine := 0
	prevGenCol := 0
	prevOrigLine := 0
	prevOrigCol := 0
	first := true

	for _, m := range mappings {
		for prevGenLine < m.GeneratedLine {
			sb.WriteByte(';')
			prevGenLine++
			prevGenCol = 0
			first = true
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false

		writeVLQ(&sb, m.GeneratedColumn-prevGenCol)
		writeVLQ(&sb, 0) // single source index
		writeVLQ(&sb, m.OriginalLine-prevOrigLine)
		writeVLQ(&sb, m.OriginalColumn-prevOrigCol)

		prevGenCol = m.GeneratedColumn
		prevOrigLine = m.OriginalLine
		prevOrigCol = m.OriginalColumn
	}
	return sb.String()
}

// writeVLQ emits one signed value as base64 VLQ.
func writeVLQ(sb *strings.Builder, value int) {
	vlq := value << 1
	if value < 0 {
		vlq = (-value << 1) | 1
	}
	for {
		digit := vlq & 0x1f
		vlq >>= 5
		if vlq != 0 {
			digit |= 0x20
		}
		sb.WriteByte(base64Chars[digit])
		if vlq == 0 {
			break
		}
	}
}
