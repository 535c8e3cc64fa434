// README: Intent classifiers applied to raw input at any step.
package dialogue

import (
	"strings"
	"unicode"
)

var recommendPhrases = []string{
	"추천", "아무데나", "아무 데나", "모르겠", "다시", "다른거", "다른 거",
	"골라줘", "정해줘", "recommend", "suggest", "pick for me", "surprise me",
}

var affirmativeTokens = []string{
	"네", "넵", "넹", "응", "웅", "ㅇㅇ", "좋아", "좋습니다", "좋네", "그래", "그걸로",
	"콜", "맞아", "오케이", "ok", "okay", "yes", "yep", "sure",
}

var negativePhrases = []string{
	"아니", "싫어", "별로", "다른", "바꿔", "말고", "안 돼", "안돼",
	"no", "nope", "nah", "another", "else",
}

// IsRecommendRequest reports whether the user asked the curator to pick for them.
func IsRecommendRequest(input string) bool {
	return containsAny(normalize(input), recommendPhrases)
}

// IsPositiveConfirmation reports whether input equals or starts with an affirmative token.
func IsPositiveConfirmation(input string) bool {
	v := normalize(input)
	if v == "" {
		return false
	}
	for _, tok := range affirmativeTokens {
		if v == tok {
			return true
		}
		if !strings.HasPrefix(v, tok) {
			continue
		}
		// "okinawa" is not "ok" and "네덜란드" is not "네"; Korean tokens only take short endings.
		if isASCII(tok) {
			if isWordRune(v[len(tok)]) {
				continue
			}
			return true
		}
		if koreanBoundary(tok, v[len(tok):]) {
			return true
		}
	}
	return false
}

// affirmativeEndings may follow a Korean affirmative token inside the same word.
var affirmativeEndings = map[string]bool{
	"요": true, "용": true, "죠": true, "다": true, "네": true, "네요": true,
	"ㅎ": true, "ㅎㅎ": true, "ㅋㅋ": true,
}

// koreanBoundary reports whether rest, the text after tok, ends the affirmative word.
func koreanBoundary(tok, rest string) bool {
	word, _, _ := strings.Cut(rest, " ")
	word = strings.TrimRightFunc(word, func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) })
	if word == "" {
		return true
	}
	return word == tok || affirmativeEndings[word]
}

func isWordRune(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// IsNegativeOrReRecommend reports declines and "try again" phrasing.
func IsNegativeOrReRecommend(input string) bool {
	v := normalize(input)
	if v == "" {
		return false
	}
	for _, p := range negativePhrases {
		if isASCII(p) {
			if hasWord(v, p) {
				return true
			}
			continue
		}
		if strings.Contains(v, p) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(v string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(v, p) {
			return true
		}
	}
	return false
}

// hasWord matches ASCII phrases on word boundaries so "no" does not hit "noir".
func hasWord(v, word string) bool {
	for _, f := range strings.FieldsFunc(v, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	}) {
		if f == word {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
