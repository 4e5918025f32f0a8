// Package frontmatter detects and decodes the YAML block that may open a
// Markdown file.
package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	openDelimiter  = []byte("---")
	closeDelimiter = []byte("...")
	utf8BOM        = []byte{0xEF, 0xBB, 0xBF}
)

// Block is a front matter block located at the start of a file.
type Block struct {
	// Raw is the YAML between the delimiters, without the delimiter lines.
	Raw []byte

	// End is the byte offset just after the closing delimiter line.
	End int

	// Lines is the number of lines covered, delimiters included.
	Lines int
}

// Split detects a leading front matter block.
// The opening line must be exactly "---"; the block closes at the next
// "---" or "..." line. An unterminated block is not front matter.
func Split(content []byte) (Block, bool) {
	offset := 0
	if bytes.HasPrefix(content, utf8BOM) {
		offset = len(utf8BOM)
	}

	line, next := readLine(content, offset)
	if !bytes.Equal(line, openDelimiter) || next >= len(content) {
		return Block{}, false
	}

	bodyStart := next
	lines := 1
	for pos := next; pos < len(content); {
		line, next = readLine(content, pos)
		lines++
		if bytes.Equal(line, openDelimiter) || bytes.Equal(line, closeDelimiter) {
			return Block{
				Raw:   content[bodyStart:pos],
				End:   next,
				Lines: lines,
			}, true
		}
		pos = next
	}

	return Block{}, false
}

// Parse decodes the block as a YAML mapping.
// An empty block yields an empty map.
func (b Block) Parse() (map[string]any, error) {
	values := make(map[string]any)
	if len(bytes.TrimSpace(b.Raw)) == 0 {
		return values, nil
	}

	if err := yaml.Unmarshal(b.Raw, &values); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	return values, nil
}

// Mask returns a copy of content with every byte of the block replaced by a
// space, keeping line breaks. Offsets and line numbers are unchanged and the
// Markdown parser sees only blank lines.
func Mask(content []byte, block Block) []byte {
	masked := bytes.Clone(content)
	end := min(block.End, len(masked))
	for i := range end {
		if masked[i] != '\n' && masked[i] != '\r' {
			masked[i] = ' '
		}
	}
	return masked
}

// readLine returns the line starting at offset with trailing whitespace and
// line ending trimmed, and the offset of the following line.
func readLine(content []byte, offset int) ([]byte, int) {
	end := bytes.IndexByte(content[offset:], '\n')
	if end < 0 {
		return bytes.TrimRight(content[offset:], " \t\r"), len(content)
	}
	return bytes.TrimRight(content[offset:offset+end], " \t\r"), offset + end + 1
}
