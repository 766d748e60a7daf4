// Package meta writes and parses the metadata note paired with every
// ingested task. The note's frontmatter records the original inbox
// filename and the derived working-copy name; rollback recovers task
// identity from these fields instead of fuzzy stem matching.
package meta

import (
	"crypto/md5" //nolint:gosec // integrity check only, not security
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Ensure the port implementations line up.
var (
	_ domain.MetaReader = (*Reader)(nil)
	_ domain.MetaWriter = (*Writer)(nil)
)

// Frontmatter is the YAML header of a metadata note.
type Frontmatter struct {
	Title           string `yaml:"title"`
	Created         string `yaml:"created"`
	SourceFile      string `yaml:"source_file"`
	SourcePath      string `yaml:"source_path"`
	DestinationName string `yaml:"destination_name"`
	Status          string `yaml:"status"`
	Priority        string `yaml:"priority"`
	FileSizeBytes   int64  `yaml:"file_size_bytes"`
	FileHashMD5     string `yaml:"file_hash_md5"`
}

// Note builds the metadata document for a newly ingested file.
// sourcePath is the original inbox file, destName the Needs_Action copy.
func Note(sourcePath, destName string, size int64, now time.Time) (string, error) {
	fm := Frontmatter{
		Title:           "Task: " + baseName(sourcePath),
		Created:         now.Format("2006-01-02 15:04:05"),
		SourceFile:      baseName(sourcePath),
		SourcePath:      sourcePath,
		DestinationName: destName,
		Status:          "needs_action",
		Priority:        "unset",
		FileSizeBytes:   size,
		FileHashMD5:     HashFile(sourcePath),
	}

	header, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("marshal meta frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# Task: %s\n\n", fm.SourceFile)
	fmt.Fprintf(&b, "Received %s, %d bytes. Working copy: `%s`.\n",
		fm.Created, size, destName)
	b.WriteString("\nAwaiting classification and planning.\n")
	return b.String(), nil
}

// HashFile returns the MD5 hex digest of a file, or "unknown" when the
// file cannot be read. Hash failure never blocks ingestion.
func HashFile(path string) string {
	f, err := os.Open(path) //nolint:gosec // vault-internal path
	if err != nil {
		return "unknown"
	}
	defer func() { _ = f.Close() }()

	h := md5.New() //nolint:gosec // integrity check only
	if _, err := io.Copy(h, f); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Writer renders metadata notes.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Note implements domain.MetaWriter.
func (Writer) Note(sourcePath, destName string, size int64, now time.Time) (string, error) {
	return Note(sourcePath, destName, size, now)
}

// Reader extracts identity fields from metadata notes on disk.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// SourceFile returns the original inbox filename recorded in the note at
// path, or "" when the note is missing or unparseable.
func (r *Reader) SourceFile(path string) string {
	fm, ok := parseFile(path)
	if !ok {
		return ""
	}
	return fm.SourceFile
}

// DestinationName returns the derived working-copy filename recorded in
// the note at path, or "".
func (r *Reader) DestinationName(path string) string {
	fm, ok := parseFile(path)
	if !ok {
		return ""
	}
	return fm.DestinationName
}

// Parse decodes a metadata note's frontmatter.
func Parse(content string) (Frontmatter, bool) {
	if !strings.HasPrefix(content, "---\n") {
		return Frontmatter{}, false
	}
	rest := content[4:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return Frontmatter{}, false
	}
	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(rest[:end+1]), &fm); err != nil {
		return Frontmatter{}, false
	}
	return fm, true
}

func parseFile(path string) (Frontmatter, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Frontmatter{}, false
	}
	return Parse(string(content))
}

func baseName(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
