package wikitext

import (
	"regexp"
	"strings"
)

var (
	// fileLinkRe matches whole [[Файл:...]] and [[File:...]] spans that
	// leaked through extraction as literal text. The bounded quantifier
	// keeps pathological inputs from backtracking.
	fileLinkRe = regexp.MustCompile(`\[\[(?:Файл|File):[^\]]{0,500}\]\]`)

	// imageParamLineRe matches a line that consists of image size and
	// position parameters, like "130px|мини|слева|подпись".
	imageParamLineRe = regexp.MustCompile(`^\d+px\|(?:мини|thumb|миниатюра|left|right|center|слева|справа|центр)\|.{0,200}$`)

	// imageFragmentRes match standalone image parameter fragments that
	// appear mid-text when the surrounding image markup was broken.
	imageFragmentRes = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*\d+px\|мини\|(?:слева|справа|центр)?.{0,200}$`),
		regexp.MustCompile(`(?m)^\s*альт=.{0,100}\|мини\|.{0,200}$`),
		regexp.MustCompile(`(?m)^\s*\d+px\|мини$`),
	}

	// multiNewlineRe collapses the blank-line runs left behind by the
	// removals above.
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// removeImageFragments scrubs image markup remnants from extracted text:
// whole file links, parameter-only lines, and stray parameter fragments.
func removeImageFragments(text string) string {
	result := fileLinkRe.ReplaceAllString(text, "")

	lines := strings.Split(result, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !imageParamLineRe.MatchString(strings.TrimSpace(line)) {
			kept = append(kept, line)
		}
	}
	result = strings.Join(kept, "\n")

	for _, re := range imageFragmentRes {
		result = re.ReplaceAllString(result, "")
	}
	return result
}

// collapseNewlines reduces runs of three or more newlines to a paragraph
// break.
func collapseNewlines(text string) string {
	return multiNewlineRe.ReplaceAllString(text, "\n\n")
}
