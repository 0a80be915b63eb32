package archive

import (
	"bytes"
	"io"
	"sort"
)

// ManifestName is the archive entry that holds the manifest.
const ManifestName = "META-INF/MANIFEST.MF"

// maxLineLength is the manifest line limit in bytes, excluding the line
// terminator.
const maxLineLength = 72

// Manifest is the main section of a jar manifest.
type Manifest struct {
	// Title and Version become Implementation-Title and
	// Implementation-Version when set.
	Title   string
	Version string
	// Attributes are written after the standard ones in key order.
	Attributes map[string]string
}

// Bytes renders the manifest in jar format: CRLF terminated lines no longer
// than 72 bytes, with continuation lines starting with a space.
func (m *Manifest) Bytes() []byte {
	var buf bytes.Buffer
	m.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo implements io.WriterTo.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	writeHeader(&buf, "Manifest-Version", "1.0")
	writeHeader(&buf, "Created-By", "groovy-build")
	if m != nil {
		if m.Title != "" {
			writeHeader(&buf, "Implementation-Title", m.Title)
		}
		if m.Version != "" {
			writeHeader(&buf, "Implementation-Version", m.Version)
		}
		keys := make([]string, 0, len(m.Attributes))
		for k := range m.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeHeader(&buf, k, m.Attributes[k])
		}
	}
	buf.WriteString("\r\n")
	return buf.WriteTo(w)
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	line := []byte(name + ": " + value)
	limit := maxLineLength
	for len(line) > limit {
		buf.Write(line[:limit])
		buf.WriteString("\r\n ")
		line = line[limit:]
		// the leading space counts against the limit
		limit = maxLineLength - 1
	}
	buf.Write(line)
	buf.WriteString("\r\n")
}
