package prereq

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var textSeparators = map[rune]bool{
	',': true, '，': true, '、': true, ';': true, '；': true, '。': true, '.': true,
	':': true, '：': true, '(': true, ')': true, '（': true, '）': true, '《': true, '》': true,
	'"': true, '“': true, '”': true, '\'': true, '‘': true, '’': true, '!': true, '！': true,
	'?': true, '？': true, '/': true, '|': true, '\n': true, '\r': true, '\t': true,
}

var textConnectors = []string{"以及", "或者", "和", "及", "与", "或", " and ", " or ", " & "}

// TextPrerequisiteTokens extracts course-name-like fragments from free text in
// order of appearance. Titles quoted with 《》 come first since they are
// unambiguous. Fragments that are too short or are "none" markers are dropped.
func TextPrerequisiteTokens(text string, p Policy) []string {
	text = strings.TrimSpace(text)
	if text == "" || isNoneMarker(text, p) {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	push := func(tok string) {
		tok = strings.TrimSpace(tok)
		if utf8.RuneCountInString(tok) < p.MinTokenRunes || isNoneMarker(tok, p) || seen[tok] {
			return
		}
		seen[tok] = true
		out = append(out, tok)
	}

	rest := text
	for {
		i := strings.Index(rest, "《")
		if i < 0 {
			break
		}
		j := strings.Index(rest[i:], "》")
		if j < 0 {
			break
		}
		push(rest[i+len("《") : i+j])
		rest = rest[:i] + "，" + rest[i+j+len("》"):]
	}

	for _, c := range textConnectors {
		rest = strings.ReplaceAll(rest, c, "，")
	}
	for _, tok := range strings.FieldsFunc(rest, func(r rune) bool { return textSeparators[r] }) {
		push(tok)
	}
	return out
}

// MatchTextPrerequisites maps the fragments of text onto known courses, first
// by exact name, then by case-insensitive containment once parentheticals and
// common suffixes are stripped. Containment must fall on word boundaries for
// Latin names, and normalized names shorter than MinTokenRunes never match by
// containment. Among several containing or contained names the one closest in
// length to the fragment wins. The target is never matched.
func MatchTextPrerequisites(text string, targetID string, courses []Course, p Policy) []string {
	tokens := TextPrerequisiteTokens(text, p)
	if len(tokens) == 0 {
		return nil
	}
	byName := make(map[string]Course, len(courses))
	norm := make([]string, len(courses))
	for i, c := range courses {
		name := strings.TrimSpace(c.Name)
		if _, dup := byName[name]; !dup || c.ID < byName[name].ID {
			byName[name] = c
		}
		norm[i] = normalizeCourseName(name, p)
	}

	var out []string
	seen := map[string]bool{targetID: true}
	for _, tok := range tokens {
		if c, ok := byName[tok]; ok {
			if !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c.ID)
			}
			continue
		}
		nt := normalizeCourseName(tok, p)
		ntLen := utf8.RuneCountInString(nt)
		if ntLen < p.MinTokenRunes {
			continue
		}
		best, bestGap := -1, 0
		for i, c := range courses {
			if c.ID == targetID {
				continue
			}
			nameLen := utf8.RuneCountInString(norm[i])
			if nameLen < p.MinTokenRunes {
				continue
			}
			if !containsBounded(nt, norm[i]) && !containsBounded(norm[i], nt) {
				continue
			}
			gap := nameLen - ntLen
			if gap < 0 {
				gap = -gap
			}
			if best < 0 || gap < bestGap || (gap == bestGap && shorterName(c, courses[best])) {
				best, bestGap = i, gap
			}
		}
		if best >= 0 && !seen[courses[best].ID] {
			seen[courses[best].ID] = true
			out = append(out, courses[best].ID)
		}
	}
	return out
}

// containsBounded reports whether sub occurs in s without splitting a Latin
// word or number on either side.
func containsBounded(s, sub string) bool {
	if sub == "" {
		return false
	}
	for off := 0; off <= len(s)-len(sub); {
		i := strings.Index(s[off:], sub)
		if i < 0 {
			return false
		}
		start, end := off+i, off+i+len(sub)
		first, _ := utf8.DecodeRuneInString(sub)
		last, _ := utf8.DecodeLastRuneInString(sub)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		okBefore := start == 0 || !(isLatinWordRune(before) && isLatinWordRune(first))
		okAfter := end == len(s) || !(isLatinWordRune(after) && isLatinWordRune(last))
		if okBefore && okAfter {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		off = start + size
	}
	return false
}

func isLatinWordRune(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func shorterName(a, b Course) bool {
	la, lb := utf8.RuneCountInString(a.Name), utf8.RuneCountInString(b.Name)
	if la != lb {
		return la < lb
	}
	return a.ID < b.ID
}

// normalizeCourseName lower-cases s, removes bracketed asides and strips
// trailing level suffixes such as "basics" or "入门".
func normalizeCourseName(s string, p Policy) string {
	s = strings.ToLower(stripParentheticals(s))
	s = strings.TrimSpace(s)
	for changed := true; changed; {
		changed = false
		for _, suf := range p.NameSuffixes {
			suf = strings.ToLower(suf)
			if suf == "" || s == suf || !strings.HasSuffix(s, suf) {
				continue
			}
			s = strings.TrimRightFunc(strings.TrimSuffix(s, suf), func(r rune) bool {
				return unicode.IsSpace(r) || r == '-' || r == '_'
			})
			changed = true
		}
	}
	return s
}

func stripParentheticals(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '（', '[', '【':
			depth++
			continue
		case ')', '）', ']', '】':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNoneMarker(s string, p Policy) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range p.NoneMarkers {
		if s == strings.ToLower(m) {
			return true
		}
	}
	return false
}
