package content

import "regexp"

var (
	linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)

	strongStar       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strongUnderscore = regexp.MustCompile(`__(.+?)__`)
	strike           = regexp.MustCompile(`~~(.+?)~~`)
	// single markers must sit at word boundaries, so snake_case names and
	// arithmetic such as 2*3*4 are left alone
	emStar       = regexp.MustCompile(`(^|[^\pL\pN*])\*([^*\s](?:[^*]*[^*\s])?)\*($|[^\pL\pN*])`)
	emUnderscore = regexp.MustCompile(`(^|[^\pL\pN_])_([^_\s](?:[^_]*[^_\s])?)_($|[^\pL\pN_])`)
	code         = regexp.MustCompile("`([^`]+)`")
)

// StripEmphasis removes inline emphasis markers, keeping the marked text.
func StripEmphasis(s string) string {
	s = strongStar.ReplaceAllString(s, "$1")
	s = strongUnderscore.ReplaceAllString(s, "$1")
	s = strike.ReplaceAllString(s, "$1")
	s = replaceBounded(emStar, s)
	s = replaceBounded(emUnderscore, s)
	return code.ReplaceAllString(s, "$1")
}

// replaceBounded strips one level of markers per pass. Adjacent spans such
// as "*a* *b*" share a boundary character, so it repeats until nothing
// changes; every pass shortens s.
func replaceBounded(re *regexp.Regexp, s string) string {
	for {
		next := re.ReplaceAllString(s, "${1}${2}${3}")
		if next == s {
			return s
		}
		s = next
	}
}

// FlattenLinks rewrites markdown links as "text (url)", or just the url when
// the text repeats it.
func FlattenLinks(s string) string {
	return linkPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := linkPattern.FindStringSubmatch(m)
		if parts[1] == parts[2] {
			return parts[2]
		}
		return parts[1] + " (" + parts[2] + ")"
	})
}

// PlainText strips all inline markup supported by the content files.
func PlainText(s string) string {
	return StripEmphasis(FlattenLinks(s))
}
