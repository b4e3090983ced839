package wikitext

import (
	"regexp"
	"strings"
)

var (
	// refPairRe matches <ref>...</ref> including attributes. References
	// are citations; their content never belongs in the body text.
	refPairRe = regexp.MustCompile(`(?is)<ref[^>/]*>.*?</ref>`)

	// refSelfRe matches self-closing references like <ref name="a" />.
	refSelfRe = regexp.MustCompile(`(?is)<ref[^>]*/>`)

	// magicWordRe matches behavior switches like __TOC__ and __НЕТ_ОГЛ__.
	magicWordRe = regexp.MustCompile(`^__[A-ZА-ЯЁ_]+__`)

	// urlSchemeRe matches the scheme prefix that starts an external link.
	urlSchemeRe = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9+.-]*:)?//`)
)

// extractText converts wikitext to plain text with paragraph boundaries
// marked by blank lines. Structure (templates, tables, references,
// comments) is dropped; inline markup is stripped; headings become their
// own paragraphs; list items fold into the surrounding paragraph.
func extractText(wikitext string, skipLists bool) string {
	text := stripComments(wikitext)
	text = stripTemplates(text)
	text = refPairRe.ReplaceAllString(text, "")
	text = refSelfRe.ReplaceAllString(text, "")
	return walkBlocks(text, skipLists)
}

// stripComments removes <!-- ... --> spans. An unterminated comment
// swallows the rest of the text, matching MediaWiki's preprocessor.
func stripComments(s string) string {
	if !strings.Contains(s, "<!--") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.Index(s, "<!--")
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		rest := s[i+4:]
		j := strings.Index(rest, "-->")
		if j < 0 {
			break
		}
		s = rest[j+3:]
	}
	return b.String()
}

// stripTemplates removes balanced {{...}} spans, including nested ones.
// An opener without a matching closer stays in the text; the template
// expansion and cleaning passes pick up what leaks through.
func stripTemplates(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "{{")
		if start < 0 {
			b.WriteString(s[i:])
			break
		}
		start += i
		end, ok := matchPair(s, start, "{{", "}}")
		if !ok {
			b.WriteString(s[i : start+2])
			i = start + 2
			continue
		}
		b.WriteString(s[i:start])
		i = end
	}
	return b.String()
}

// matchPair returns the index just past the closer matching the opener at
// start, tracking nesting depth.
func matchPair(s string, start int, opener, closer string) (int, bool) {
	depth := 0
	i := start
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], opener):
			depth++
			i += len(opener)
		case strings.HasPrefix(s[i:], closer):
			depth--
			i += len(closer)
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}
	return 0, false
}

// walkBlocks processes the text line by line, maintaining the current
// paragraph and flushing it on blank lines and headings.
func walkBlocks(text string, skipLists bool) string {
	var out strings.Builder
	var cur strings.Builder
	tableDepth := 0
	seenContent := false

	flush := func() {
		if strings.TrimSpace(cur.String()) != "" {
			out.WriteString(strings.TrimSpace(cur.String()))
			out.WriteString("\n\n")
			cur.Reset()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if tableDepth > 0 {
			switch {
			case strings.HasPrefix(line, "|}"):
				tableDepth--
			case strings.HasPrefix(line, "{|"):
				tableDepth++
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(line, "{|"):
			tableDepth = 1
		case isHeadingLine(line):
			heading := strings.TrimSpace(parseInline(headingText(line), skipLists))
			if heading != "" {
				if cur.Len() > 0 {
					out.WriteString(cur.String())
					out.WriteString("\n\n")
					cur.Reset()
				}
				out.WriteString(heading)
				out.WriteString("\n\n")
			}
		case !seenContent && isRedirectLine(trimmed):
			// A redirect page has no body text of its own.
		case line[0] == '*' || line[0] == '#' || line[0] == ';' || line[0] == ':':
			if !skipLists {
				item := strings.TrimSpace(parseInline(strings.TrimLeft(line, "*#;: \t"), skipLists))
				if item != "" {
					cur.WriteString(item)
					cur.WriteByte(' ')
				}
			}
		case strings.HasPrefix(line, "----"):
			// Horizontal divider.
		case line[0] == ' ' || line[0] == '\t':
			// Preformatted block line.
			cur.WriteString(parseInline(strings.TrimLeft(line, " \t"), skipLists))
			cur.WriteByte('\n')
		default:
			cur.WriteString(parseInline(line, skipLists))
			cur.WriteByte('\n')
		}

		if trimmed != "" {
			seenContent = true
		}
	}

	if strings.TrimSpace(cur.String()) != "" {
		out.WriteString(cur.String())
	}
	return out.String()
}

// isHeadingLine reports whether the line is a section heading: it starts
// with = and, ignoring trailing whitespace, ends with =.
func isHeadingLine(line string) bool {
	if line == "" || line[0] != '=' {
		return false
	}
	trimmed := strings.TrimRight(line, " \t")
	return len(trimmed) >= 2 && strings.HasSuffix(trimmed, "=")
}

// headingText strips the surrounding = markers from a heading line.
func headingText(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	trimmed = strings.TrimLeft(trimmed, "=")
	trimmed = strings.TrimRight(trimmed, "=")
	return strings.TrimSpace(trimmed)
}

// isRedirectLine reports whether the line is a redirect directive.
func isRedirectLine(line string) bool {
	upper := strings.ToUpper(line)
	return strings.HasPrefix(upper, "#REDIRECT") || strings.HasPrefix(upper, "#ПЕРЕНАПРАВЛЕНИЕ")
}

// parseInline strips inline markup from one line of text: links keep
// their display text, bold and italic markers vanish, tags and character
// entities and behavior switches are dropped.
func parseInline(s string, skipLists bool) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '[' && strings.HasPrefix(s[i:], "[["):
			end, ok := matchPair(s, i, "[[", "]]")
			if !ok {
				b.WriteByte(c)
				i++
				continue
			}
			b.WriteString(linkText(s[i+2:end-2], skipLists))
			i = end

		case c == '[':
			closeIdx := strings.IndexByte(s[i+1:], ']')
			if closeIdx < 0 || !urlSchemeRe.MatchString(s[i+1:]) {
				b.WriteByte(c)
				i++
				continue
			}
			inner := parseInline(s[i+1:i+1+closeIdx], skipLists)
			if !strings.HasPrefix(inner, "http://") && !strings.HasPrefix(inner, "https://") {
				b.WriteString(inner)
			}
			i += closeIdx + 2

		case c == '\'' && strings.HasPrefix(s[i:], "''"):
			for i < len(s) && s[i] == '\'' {
				i++
			}

		case c == '<':
			end := strings.IndexByte(s[i:], '>')
			if end < 0 || !looksLikeTag(s[i:i+end+1]) {
				b.WriteByte(c)
				i++
				continue
			}
			i += end + 1

		case c == '&':
			if n, ok := matchEntity(s[i:]); ok {
				i += n
			} else {
				b.WriteByte(c)
				i++
			}

		case c == '_' && strings.HasPrefix(s[i:], "__"):
			if m := magicWordRe.FindString(s[i:]); m != "" {
				i += len(m)
			} else {
				b.WriteByte(c)
				i++
			}

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// linkText returns the text an internal link contributes to the output.
// File, image, and category links in the canonical namespaces vanish
// entirely. Links in unrecognized namespaces (the Russian Файл: included)
// keep their display part, and a display that still names a file is
// dropped; whatever image parameters leak through are scrubbed by the
// fragment pass later.
func linkText(inner string, skipLists bool) string {
	target := inner
	display := inner
	if p := strings.Index(inner, "|"); p >= 0 {
		target = inner[:p]
		display = inner[p+1:]
	}

	switch namespaceOf(target) {
	case "file", "image", "category":
		return ""
	}

	parsed := parseInline(display, skipLists)
	if strings.Contains(parsed, "Файл:") || strings.Contains(parsed, "File:") {
		return ""
	}
	return parsed
}

// namespaceOf returns the lowercased namespace prefix of a link target,
// or the empty string if the target has none.
func namespaceOf(target string) string {
	p := strings.Index(target, ":")
	if p < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(target[:p]))
}

// looksLikeTag reports whether the bracketed span is an HTML-ish tag:
// <name ...>, </name>, or <name ... />.
func looksLikeTag(span string) bool {
	if len(span) < 3 {
		return false
	}
	body := span[1 : len(span)-1]
	body = strings.TrimPrefix(body, "/")
	if body == "" {
		return false
	}
	c := body[0]
	if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return false
	}
	// A second angle bracket inside means this was no tag.
	return !strings.ContainsAny(body, "<")
}

// namedEntities are the character references dropped from the output.
// MediaWiki renders these as typography (non-breaking spaces, dashes,
// guillemets); none of them carry article content.
var namedEntities = map[string]bool{
	"nbsp": true, "amp": true, "lt": true, "gt": true, "quot": true,
	"apos": true, "ndash": true, "mdash": true, "shy": true,
	"thinsp": true, "hellip": true, "laquo": true, "raquo": true,
	"deg": true, "minus": true, "times": true, "sect": true,
	"copy": true, "reg": true, "middot": true, "bull": true,
}

// matchEntity reports whether s starts with a recognized character
// entity and returns its length.
func matchEntity(s string) (int, bool) {
	end := strings.IndexByte(s, ';')
	if end < 1 || end > 9 {
		return 0, false
	}
	name := s[1:end]
	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		return entityLen(name[2:], end, isHexDigit)
	}
	if strings.HasPrefix(name, "#") {
		return entityLen(name[1:], end, isDigit)
	}
	if namedEntities[name] {
		return end + 1, true
	}
	return 0, false
}

// entityLen validates the numeric part of a character reference.
func entityLen(digits string, end int, valid func(byte) bool) (int, bool) {
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if !valid(digits[i]) {
			return 0, false
		}
	}
	return end + 1, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
