// README: Visual concepts, their film/camera metadata and the alias table used at the concept step.
package dialogue

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type ConceptID string

const (
	ConceptFlaneur  ConceptID = "flaneur"
	ConceptFilmlog  ConceptID = "filmlog"
	ConceptMidnight ConceptID = "midnight"
	ConceptPastoral ConceptID = "pastoral"
	ConceptNoir     ConceptID = "noir"
	ConceptSeaside  ConceptID = "seaside"
)

// DefaultConcept is used when concept input matches no alias.
const DefaultConcept = ConceptFilmlog

type Concept struct {
	ID               ConceptID
	Name             string
	NameKo           string
	Tagline          string
	Vibe             string
	FilmBrand        string
	RecommendedFilms []string
	CameraModels     []string
	OutfitStyle      string
}

var concepts = []Concept{
	{
		ID:               ConceptFlaneur,
		Name:             "Flâneur",
		NameKo:           "플라뇌르",
		Tagline:          "지도 없이 걷는 낭만",
		Vibe:             "urban wandering, literary atmosphere, intellectual charm, quiet observation",
		FilmBrand:        "Ricoh",
		RecommendedFilms: []string{"Kodak Portra 400", "Ilford HP5 Plus"},
		CameraModels:     []string{"Ricoh GR1", "Leica M6", "Contax G2"},
		OutfitStyle:      "미니멀리스트 도시 스타일, 중성 톤",
	},
	{
		ID:               ConceptFilmlog,
		Name:             "Film Log",
		NameKo:           "필름 로그",
		Tagline:          "빈티지 감성 기록",
		Vibe:             "vintage warmth, nostalgic moments, golden hour glow, retro aesthetic",
		FilmBrand:        "Kodak",
		RecommendedFilms: []string{"Kodak ColorPlus 200", "Kodak Gold 200"},
		CameraModels:     []string{"Kodak M35", "Canon AE-1", "Pentax K1000"},
		OutfitStyle:      "레트로 캐주얼, 따뜻한 컬러",
	},
	{
		ID:               ConceptMidnight,
		Name:             "Midnight",
		NameKo:           "미드나잇",
		Tagline:          "과거 예술가와의 조우",
		Vibe:             "artistic bohemian, dramatic shadows, 1920s Paris salon atmosphere",
		FilmBrand:        "Pentax",
		RecommendedFilms: []string{"Kodak Tri-X 400", "Ilford Delta 3200"},
		CameraModels:     []string{"Pentax MX", "Rolleiflex", "Mamiya 7"},
		OutfitStyle:      "아티스틱, 드라마틱, 레이어드 텍스처",
	},
	{
		ID:               ConceptPastoral,
		Name:             "Pastoral",
		NameKo:           "패스토럴",
		Tagline:          "햇살 아래 느린 하루",
		Vibe:             "serene nature, soft sunlight, peaceful countryside, gentle breeze",
		FilmBrand:        "FUJI",
		RecommendedFilms: []string{"Fujifilm Superia 400", "Fujicolor C200"},
		CameraModels:     []string{"Fujifilm Klasse W", "Fujica ST801", "Olympus OM-1"},
		OutfitStyle:      "린넨과 코튼, 내추럴 톤",
	},
	{
		ID:               ConceptNoir,
		Name:             "Noir",
		NameKo:           "누아르",
		Tagline:          "네온과 그림자의 도시",
		Vibe:             "cinematic shadows, neon reflections, mysterious urban night, dramatic contrast",
		FilmBrand:        "Nikon",
		RecommendedFilms: []string{"CineStill 800T", "Ilford HP5 Plus"},
		CameraModels:     []string{"Nikon FM2", "Nikon F3", "Leica M6"},
		OutfitStyle:      "블랙 톤, 롱 코트, 시크한 실루엣",
	},
	{
		ID:               ConceptSeaside,
		Name:             "Seaside",
		NameKo:           "씨사이드",
		Tagline:          "바닷바람에 실린 기억",
		Vibe:             "ocean breeze, coastal serenity, sun-kissed memories, peaceful waves",
		FilmBrand:        "Canon",
		RecommendedFilms: []string{"Kodak Portra 160", "Fujifilm Superia 400"},
		CameraModels:     []string{"Canon AE-1", "Canon Autoboy", "Nikonos V"},
		OutfitStyle:      "화이트 셔츠, 밝은 파스텔, 샌들",
	},
}

// filmRendering describes how each film/camera brand renders, for image prompts.
var filmRendering = map[string]string{
	"FUJI":   "Fujifilm aesthetic with vibrant greens, cool blues, crisp tones, clean grain, airy and fresh atmosphere",
	"Kodak":  "Kodak Portra style with soft pastel colors, warm golden highlights, creamy shadows, nostalgic analog warmth",
	"Canon":  "Canon rendering with warm soft tones, creamy skin tones, smooth contrast, emotional and gentle",
	"Ricoh":  "Ricoh GR style with high micro-contrast, muted colors, sharp details, street photography mood",
	"Nikon":  "Nikon style with natural color accuracy, deep contrast, high sharpness, realistic and true-to-life",
	"Pentax": "Pentax vintage look with matte tones, warm shadows, noticeable grain, emotional softness",
}

func Concepts() []Concept {
	return append([]Concept(nil), concepts...)
}

func LookupConcept(id ConceptID) (Concept, bool) {
	for _, c := range concepts {
		if c.ID == id {
			return c, true
		}
	}
	return Concept{}, false
}

// FilmRendering returns the rendering description for a brand, or "" when unknown.
func FilmRendering(brand string) string {
	return filmRendering[brand]
}

type conceptAlias struct {
	alias string
	id    ConceptID
}

// conceptAliases is ordered; the first match wins.
var conceptAliases = []conceptAlias{
	{"flaneur", ConceptFlaneur},
	{"flâneur", ConceptFlaneur},
	{"플라뇌르", ConceptFlaneur},
	{"플라네르", ConceptFlaneur},
	{"산책", ConceptFlaneur},
	{"산책자", ConceptFlaneur},
	{"urban", ConceptFlaneur},
	{"literary", ConceptFlaneur},
	{"문학", ConceptFlaneur},

	{"filmlog", ConceptFilmlog},
	{"film log", ConceptFilmlog},
	{"필름로그", ConceptFilmlog},
	{"필름 로그", ConceptFilmlog},
	{"빈티지", ConceptFilmlog},
	{"레트로", ConceptFilmlog},
	{"vintage", ConceptFilmlog},
	{"retro", ConceptFilmlog},
	{"nostalgic", ConceptFilmlog},

	{"midnight", ConceptMidnight},
	{"미드나잇", ConceptMidnight},
	{"미드나이트", ConceptMidnight},
	{"보헤미안", ConceptMidnight},
	{"예술가", ConceptMidnight},
	{"bohemian", ConceptMidnight},
	{"artistic", ConceptMidnight},

	{"pastoral", ConceptPastoral},
	{"패스토럴", ConceptPastoral},
	{"전원", ConceptPastoral},
	{"시골", ConceptPastoral},
	{"자연", ConceptPastoral},
	{"countryside", ConceptPastoral},
	{"nature", ConceptPastoral},

	{"noir", ConceptNoir},
	{"누아르", ConceptNoir},
	{"느와르", ConceptNoir},
	{"네온", ConceptNoir},
	{"시네마틱", ConceptNoir},
	{"cinematic", ConceptNoir},
	{"neon", ConceptNoir},

	{"seaside", ConceptSeaside},
	{"씨사이드", ConceptSeaside},
	{"바다", ConceptSeaside},
	{"바닷가", ConceptSeaside},
	{"해변", ConceptSeaside},
	{"ocean", ConceptSeaside},
	{"beach", ConceptSeaside},
	{"coastal", ConceptSeaside},
}

// aliasSuffixes are endings a Korean answer may attach to a concept name.
var aliasSuffixes = []string{"으로요", "으로", "로요", "이요", "로", "요", "풍", "이"}

// conceptNegations after a matched token (or "not"/"no" before it) cancel the match.
var conceptNegations = map[string]bool{
	"말고": true, "빼고": true, "아니고": true, "아니": true, "아니요": true,
	"싫어": true, "싫어요": true, "별로": true, "말구": true,
}

// ResolveConcept maps free text to a concept id, case and space insensitive.
// After a whole-input match it looks for an alias as a whole word (or a two-word
// phrase); a word that merely contains an alias does not count.
// The bool is false when nothing matched and DefaultConcept was returned.
func ResolveConcept(input string) (ConceptID, bool) {
	key := compact(input)
	if key == "" {
		return DefaultConcept, false
	}
	if id, ok := aliasFor(key); ok {
		return id, true
	}

	words := conceptWords(input)
	for i := range words {
		for n := 1; n <= 2 && i+n <= len(words); n++ {
			id, ok := aliasFor(strings.Join(words[i:i+n], ""))
			if !ok {
				id, ok = aliasWithSuffix(strings.Join(words[i:i+n], ""))
			}
			if !ok {
				continue
			}
			if negatedAt(words, i, i+n) {
				break
			}
			return id, true
		}
	}
	return DefaultConcept, false
}

func aliasFor(key string) (ConceptID, bool) {
	for _, a := range conceptAliases {
		if compact(a.alias) == key {
			return a.id, true
		}
	}
	return "", false
}

func aliasWithSuffix(word string) (ConceptID, bool) {
	for _, suf := range aliasSuffixes {
		stem, ok := strings.CutSuffix(word, suf)
		if !ok || utf8.RuneCountInString(stem) < 2 {
			continue
		}
		if id, ok := aliasFor(stem); ok {
			return id, true
		}
	}
	return "", false
}

// negatedAt reports whether words[start:end] is declined by its neighbours.
func negatedAt(words []string, start, end int) bool {
	if end < len(words) && conceptNegations[words[end]] {
		return true
	}
	if start > 0 && (words[start-1] == "not" || words[start-1] == "no") {
		return true
	}
	return false
}

// conceptWords lowercases and splits on spaces and punctuation.
func conceptWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '-')
	})
}

// compact lowercases and strips all whitespace.
func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
