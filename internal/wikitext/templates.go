package wikitext

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// dateTemplateRe matches the Julian-to-Gregorian date template
	// {{СС3|d.m.yyyy}} that Russian Wikipedia uses for historic dates.
	dateTemplateRe = regexp.MustCompile(`\{\{СС3\|(\d+)\.(\d+)\.(\d+)\}\}`)

	// yearTemplateRe matches {{год|YYYY}}.
	yearTemplateRe = regexp.MustCompile(`\{\{год\|(\d{3,4})\}\}`)

	// numTemplateRe matches {{num|N}}.
	numTemplateRe = regexp.MustCompile(`\{\{num\|(\d+)\}\}`)

	// simpleTemplateRe matches any remaining one-argument template and
	// keeps the argument.
	simpleTemplateRe = regexp.MustCompile(`\{\{[^|{}]+\|([^|{}]+)\}\}`)
)

// monthGenitive holds the Russian month names in the genitive case, as
// they appear in running date text.
var monthGenitive = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// expandTemplates rewrites template text that leaked through extraction
// into its rendered form. Well-formed templates are dropped as structure
// before this runs; what arrives here is the malformed remainder, and
// dates, years, and plain numbers are worth salvaging as text.
func expandTemplates(s string) string {
	s = dateTemplateRe.ReplaceAllStringFunc(s, expandDate)
	s = yearTemplateRe.ReplaceAllString(s, "$1")
	s = numTemplateRe.ReplaceAllString(s, "$1")
	s = simpleTemplateRe.ReplaceAllString(s, "$1")
	return s
}

// expandDate renders one {{СС3|d.m.yyyy}} match as "d <month> yyyy".
// An out-of-range month falls back to the numeric "d.m.yyyy" form.
func expandDate(match string) string {
	caps := dateTemplateRe.FindStringSubmatch(match)
	if caps == nil {
		return match
	}
	day, monthStr, year := caps[1], caps[2], caps[3]

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		month = 0
	}
	if month < 1 || month > 12 {
		return day + "." + strconv.Itoa(month) + "." + year
	}
	return strings.Join([]string{day, monthGenitive[month-1], year}, " ")
}
