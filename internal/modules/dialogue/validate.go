// README: Per-step input validators. Pure functions over trimmed input.
package dialogue

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lengthRange struct {
	min, max int
}

var stepLengths = map[Step]lengthRange{
	StepGreeting: {2, 30},
	StepSpot:     {2, 50},
	StepAction:   {3, 100},
	StepOutfit:   {2, 100},
	StepPose:     {2, 100},
}

var cityDenylist = []string{
	"...", "…", "test", "테스트", "asdf", "qwer", "ㅁㄴㅇㄹ",
	"네", "넵", "응", "ㅇㅇ", "ok", "okay", "yes", "음", "흠", "글쎄",
}

var spotDenylist = []string{
	"몰라", "모름", "모르겠어", "don'tknow", "dontknow", "idk", "test", "테스트",
}

var actionDenylist = []string{
	"네", "응", "그냥", "아무거나", "몰라", "ㅇㅇ", "yes", "ok",
}

// vagueDenylist applies to outfit and pose, bare and with a politeness suffix.
var vagueDenylist = []string{
	"아무거나", "그냥", "편하게", "대충", "알아서", "상관없어", "몰라", "아무렇게나",
	"whatever", "anything", "idk",
}

var politeSuffixes = []string{"요", "이요", "용"}

// Validate reports whether raw is acceptable for the step's slot.
// Steps without a validator accept any non-empty input.
func Validate(step Step, raw string) bool {
	v := strings.TrimSpace(raw)
	if v == "" {
		return false
	}
	if lr, ok := stepLengths[step]; ok {
		n := utf8.RuneCountInString(v)
		if n < lr.min || n > lr.max {
			return false
		}
	}
	key := compact(v)

	switch step {
	case StepGreeting:
		if isDigits(key) || !hasLetter(v) || isFiller(key) {
			return false
		}
		return !inList(key, cityDenylist)
	case StepSpot:
		if isDigits(key) || isFiller(key) {
			return false
		}
		return !inList(key, spotDenylist)
	case StepAction:
		return !inList(key, actionDenylist)
	case StepOutfit, StepPose:
		return !isVague(key)
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// fillerRunes are laughter/crying jamo and trailing punctuation.
const fillerRunes = "ㅋㅎㅠㅜㅡ.…~!?ㄷ"

// isFiller is true for strings made only of laughter markers and punctuation.
func isFiller(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(fillerRunes, r) {
			return false
		}
	}
	return true
}

func inList(key string, list []string) bool {
	for _, item := range list {
		if key == compact(item) {
			return true
		}
	}
	return false
}

func isVague(key string) bool {
	for _, phrase := range vagueDenylist {
		p := compact(phrase)
		if key == p {
			return true
		}
		for _, suffix := range politeSuffixes {
			if key == p+suffix {
				return true
			}
		}
	}
	return false
}
