// Package markdown parses a consolidated markdown documentation export
// into discrete document records.
//
// The source format is one section per document: a marker line
// "## Arquivo: <path>.md" followed by a horizontal rule, a metadata
// block delimited by "## Metadata_Start" / "## Metadata_End" containing
// "## key: value" lines, and free body text until the next marker.
package markdown

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
	"github.com/custodia-labs/doclens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/doclens-cli/internal/logger"
)

// Ensure Parser implements the interface.
var _ driven.CorpusParser = (*Parser)(nil)

// Line patterns for the consolidated export format.
var (
	sectionMarkerRe = regexp.MustCompile(`^##\s*Arquivo:\s*(\S.*\.md)\s*$`)
	ruleRe          = regexp.MustCompile(`^-{3,}\s*$`)
	metadataStartRe = regexp.MustCompile(`^##\s*Metadata_Start\s*$`)
	metadataEndRe   = regexp.MustCompile(`^##\s*Metadata_End\s*$`)
	metadataKVRe    = regexp.MustCompile(`^(?:##\s*)?([A-Za-z][A-Za-z0-9_-]*):\s*(.*)$`)
	slugCleanRe     = regexp.MustCompile(`[^a-z0-9]+`)
	multiBlankRe    = regexp.MustCompile(`\n{3,}`)
)

// parseState is the position of the line-oriented state machine.
type parseState int

const (
	// seekingSection skips input until the first section marker.
	seekingSection parseState = iota
	// inMetadata collects key/value lines of a metadata block.
	inMetadata
	// inBody collects free body text.
	inBody
)

// Parser splits a consolidated documentation export into records.
// Parsing is a single forward pass; the only lookahead is finding the
// metadata end marker, and a missing end marker swallows the section
// body (the section is then skipped as empty, with a warning).
type Parser struct{}

// New creates a new consolidated-markdown corpus parser.
func New() *Parser {
	return &Parser{}
}

// section accumulates one document between two markers.
type section struct {
	filePath string
	meta     map[string]string
	body     []string
}

// Parse reads the consolidated source and returns one record per section,
// in source order.
//
// Policies, fixed and deterministic:
//   - missing title: derived from the section file path, with a warning
//   - missing slug: slugified from the title, with a warning
//   - empty body after metadata stripping: section skipped, with a warning
//   - duplicate slug: first occurrence wins, later sections skipped
func (p *Parser) Parse(_ context.Context, r io.Reader) ([]domain.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		records []domain.Record
		seen    = make(map[string]struct{})
		cur     *section
		state   = seekingSection
	)

	flush := func() {
		if cur == nil {
			return
		}
		rec, ok := p.finalise(cur)
		if ok {
			if _, dup := seen[rec.Slug]; dup {
				logger.Warn("duplicate slug %q in section %q, keeping first occurrence", rec.Slug, cur.filePath)
			} else {
				seen[rec.Slug] = struct{}{}
				records = append(records, rec)
			}
		}
		cur = nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		if m := sectionMarkerRe.FindStringSubmatch(line); m != nil {
			flush()
			cur = &section{filePath: strings.TrimSpace(m[1]), meta: make(map[string]string)}
			state = inBody
			continue
		}

		switch {
		case cur == nil:
			state = seekingSection // preamble before the first marker

		case metadataStartRe.MatchString(line):
			state = inMetadata

		case metadataEndRe.MatchString(line):
			state = inBody

		case state == inMetadata:
			if m := metadataKVRe.FindStringSubmatch(line); m != nil {
				key := strings.ToLower(m[1])
				if _, exists := cur.meta[key]; !exists {
					cur.meta[key] = strings.TrimSpace(m[2])
				}
			}
			// Non key/value lines inside the block are ignored.

		default:
			if ruleRe.MatchString(line) && len(cur.body) == 0 {
				continue // divider directly under the section marker
			}
			cur.body = append(cur.body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	flush()

	if len(records) == 0 {
		return nil, fmt.Errorf("consolidated source: %w", domain.ErrNoSections)
	}
	return records, nil
}

// finalise applies the fallback policies and produces a record,
// or false when the section has no usable body.
func (p *Parser) finalise(s *section) (domain.Record, bool) {
	body := strings.TrimSpace(strings.Join(s.body, "\n"))
	body = stripAnnotation(body)
	body = normaliseWhitespace(body)

	title := s.meta["title"]
	if title == "" {
		title = titleFromPath(s.filePath)
		logger.Warn("no title in metadata for %q, derived %q", s.filePath, title)
	}

	slug := s.meta["slug"]
	if slug == "" {
		slug = Slugify(title)
		logger.Warn("no slug in metadata for %q, derived %q", s.filePath, slug)
	}

	if body == "" {
		logger.Warn("empty body for %q, skipping section", s.filePath)
		return domain.Record{}, false
	}

	return domain.Record{
		Slug:     slug,
		Title:    title,
		Content:  body,
		FilePath: s.filePath,
	}, true
}

// stripAnnotation removes a leading ":::"-delimited note (for example
// ":::(Internal) (Private notes)") that export tools prepend to some
// bodies. Text after the closing ":::" is the real body; when there is
// no closing marker, only the annotation line itself is dropped.
func stripAnnotation(body string) string {
	if !strings.HasPrefix(body, ":::") {
		return body
	}
	rest := strings.TrimSpace(strings.TrimPrefix(body, ":::"))
	if idx := strings.Index(rest, ":::"); idx >= 0 {
		after := strings.TrimSpace(rest[idx+len(":::"):])
		if after != "" {
			return after
		}
		return strings.TrimSpace(rest[:idx])
	}
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		return strings.TrimSpace(rest[nl+1:])
	}
	return ""
}

// normaliseWhitespace trims trailing whitespace per line and collapses
// runs of blank lines into a single blank line.
func normaliseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	s = strings.Join(lines, "\n")
	s = multiBlankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// titleFromPath derives a readable title from a section file path.
func titleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}

// Slugify converts free text into a URL-safe slug: lowercase with
// non-alphanumeric runs collapsed to single hyphens.
func Slugify(s string) string {
	s = slugCleanRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
