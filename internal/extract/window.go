package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxSentenceLen = 200
	sentenceRadius = 100
	wordRadius     = 10
	ellipsis       = "..."
)

// SentenceAround returns the sentence of text that contains the first
// (case-insensitive) occurrence of match. Sentences longer than 200
// characters are cut to 100 characters either side of the match, with "..."
// marking each cut end. When match is not found or no terminating period
// follows it, match itself is returned.
func SentenceAround(text, match string) string {
	start, end, ok := locate(text, match)
	if !ok {
		return match
	}
	return sentenceAt([]rune(text), start, end, match)
}

// SentenceAt is SentenceAround for a known byte range of text.
func SentenceAt(text string, byteStart, byteEnd int) string {
	runes := []rune(text)
	start := utf8.RuneCountInString(text[:byteStart])
	end := start + utf8.RuneCountInString(text[byteStart:byteEnd])
	return sentenceAt(runes, start, end, text[byteStart:byteEnd])
}

// WordAround returns the word of text containing the first (case-insensitive)
// occurrence of match, looking at most 10 characters either side. It recovers
// the page's own spelling of a lower-cased trigger.
func WordAround(text, match string) string {
	start, end, ok := locate(text, match)
	if !ok {
		return match
	}
	return wordAt([]rune(text), start, end)
}

// WordAt is WordAround for a known byte range of text.
func WordAt(text string, byteStart, byteEnd int) string {
	runes := []rune(text)
	start := utf8.RuneCountInString(text[:byteStart])
	end := start + utf8.RuneCountInString(text[byteStart:byteEnd])
	return wordAt(runes, start, end)
}

func sentenceAt(runes []rune, start, end int, match string) string {
	// terminating period at or after the match
	stop := -1
	for i := end; i < len(runes); i++ {
		if runes[i] == '.' {
			stop = i + 1
			break
		}
	}
	if stop < 0 {
		return match
	}

	// nearest period before the match, then the first capital after it
	begin := 0
	for i := start - 1; i >= 0; i-- {
		if runes[i] == '.' {
			begin = i + 1
			break
		}
	}
	for i := begin; i <= start && i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) {
			begin = i
			break
		}
	}

	if stop-begin <= maxSentenceLen {
		return strings.TrimSpace(string(runes[begin:stop]))
	}

	from := max(begin, start-sentenceRadius)
	to := min(stop, end+sentenceRadius)

	var b strings.Builder
	if from > begin {
		b.WriteString(ellipsis)
	}
	b.WriteString(strings.TrimSpace(string(runes[from:to])))
	if to < stop {
		b.WriteString(ellipsis)
	}
	return b.String()
}

func wordAt(runes []rune, start, end int) string {
	lo := max(0, start-wordRadius)
	hi := min(len(runes), end+wordRadius)

	left := start
	for left > lo && isWordRune(runes[left-1]) {
		left--
	}
	right := end
	for right < hi && isWordRune(runes[right]) {
		right++
	}
	return string(runes[left:right])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// locate finds match in text ignoring case and returns rune offsets.
func locate(text, match string) (int, int, bool) {
	if match == "" {
		return 0, 0, false
	}
	hay := lowerRunes(text)
	needle := lowerRunes(match)

	for i := 0; i+len(needle) <= len(hay); i++ {
		if runesEqual(hay[i:i+len(needle)], needle) {
			return i, i + len(needle), true
		}
	}
	return 0, 0, false
}

func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
