package wikitext

import "strings"

// emptySectionNames are the structural section headings that carry no
// content of their own. After extraction drops references, tables, and
// link farms, these headings are frequently left dangling at the end of
// an article.
var emptySectionNames = []string{
	"Население", "Примечания", "Литература", "Ссылки",
	"Категория", "См. также", "Источники",
}

// isStructuralHeading reports whether the paragraph is one of the known
// structural headings or a bare category marker.
func isStructuralHeading(paragraph string) bool {
	if strings.HasPrefix(paragraph, "Категория:") {
		return true
	}
	for _, name := range emptySectionNames {
		if paragraph == name {
			return true
		}
	}
	return false
}

// removeEmptySections drops structural headings that have no content
// paragraph after them. A heading followed by another structural heading
// counts as empty too.
func removeEmptySections(paragraphs []string) []string {
	result := make([]string, 0, len(paragraphs))
	for i, paragraph := range paragraphs {
		if isStructuralHeading(paragraph) {
			hasContentAfter := i+1 < len(paragraphs) && !isStructuralHeading(paragraphs[i+1])
			if hasContentAfter {
				result = append(result, paragraph)
			}
			continue
		}
		result = append(result, paragraph)
	}
	return result
}
