// README: Recommendation catalog; static candidate tables with no-immediate-repeat selection.
package dialogue

import (
	"math/rand"
	"strings"
)

// Suggestion is one catalog candidate and the reason shown to the user.
type Suggestion struct {
	Value  string
	Reason string
}

// Catalog picks candidate values per slot. picks carries the last index per slot
// and is updated on every draw.
type Catalog interface {
	PickCity(picks Picks) Suggestion
	PickSpot(city string, picks Picks) Suggestion
	PickAction(picks Picks) Suggestion
	PickOutfit(picks Picks) Suggestion
	PickPose(picks Picks) Suggestion
}

type cityEntry struct {
	Suggestion
	Aliases []string
	Spots   []Suggestion
}

var cityTable = []cityEntry{
	{
		Suggestion: Suggestion{"파리", "골목마다 카페와 서점이 이어져 걷기만 해도 영화 같은 도시예요"},
		Aliases:    []string{"paris"},
		Spots: []Suggestion{
			{"몽마르트 언덕", "해 질 녘 계단에서 내려다보는 파리 지붕들이 아름다워요"},
			{"생마르탱 운하", "철제 다리와 운하를 따라 현지인의 오후를 느낄 수 있어요"},
			{"셰익스피어 앤 컴퍼니 서점", "책 냄새 가득한 오래된 서점이에요"},
			{"마레 지구 골목", "돌바닥 골목과 작은 부티크가 이어져요"},
		},
	},
	{
		Suggestion: Suggestion{"리스본", "노란 트램과 파스텔 벽이 필름 사진에 딱 어울려요"},
		Aliases:    []string{"lisbon", "lisboa"},
		Spots: []Suggestion{
			{"알파마 골목", "빨래가 걸린 언덕길과 파두 소리가 들려요"},
			{"28번 트램 정류장", "노란 트램이 지나가는 순간을 담을 수 있어요"},
			{"미라도루 다 그라사", "도시 전체를 내려다보는 전망대예요"},
		},
	},
	{
		Suggestion: Suggestion{"교토", "오래된 목조 거리와 계절의 색이 조용히 스며드는 곳이에요"},
		Aliases:    []string{"kyoto"},
		Spots: []Suggestion{
			{"기온 시라카와", "버드나무와 작은 돌다리가 있는 운하길이에요"},
			{"철학의 길", "물길을 따라 걷는 한적한 산책로예요"},
			{"가모가와 강변", "강가에 앉아 쉬는 사람들이 그림 같아요"},
		},
	},
	{
		Suggestion: Suggestion{"프라하", "붉은 지붕과 고딕 첨탑이 동화 같은 분위기를 만들어요"},
		Aliases:    []string{"prague", "praha"},
		Spots: []Suggestion{
			{"캄파 섬", "블타바 강변의 조용한 작은 섬이에요"},
			{"말라 스트라나 골목", "바로크 건물 사이 좁은 길이 이어져요"},
			{"레트나 공원 전망대", "다리들이 겹쳐 보이는 풍경이 유명해요"},
		},
	},
	{
		Suggestion: Suggestion{"포르투", "강가의 타일 건물과 와인 창고가 따뜻한 색감을 줘요"},
		Aliases:    []string{"porto", "oporto"},
		Spots: []Suggestion{
			{"히베이라 강변", "알록달록한 집들이 강을 따라 늘어서 있어요"},
			{"동 루이스 1세 다리", "다리 위에서 보는 노을이 멋져요"},
		},
	},
	{
		Suggestion: Suggestion{"타이베이", "오래된 상점가와 네온 간판이 섞인 낮밤이 다른 도시예요"},
		Aliases:    []string{"taipei", "타이페이"},
		Spots: []Suggestion{
			{"다다오청", "오래된 찻집과 건어물 상점이 모인 옛 거리예요"},
			{"융캉제 골목", "작은 카페와 식당이 모여 있어요"},
			{"베이터우 온천 거리", "김이 피어오르는 골목과 목조 도서관이 있어요"},
		},
	},
	{
		Suggestion: Suggestion{"제주", "돌담길과 바다가 가까워 자연스러운 사진이 나와요"},
		Aliases:    []string{"jeju", "제주도"},
		Spots: []Suggestion{
			{"월정리 해변", "에메랄드빛 바다와 하얀 모래가 펼쳐져요"},
			{"종달리 마을", "낮은 돌담과 작은 책방이 있는 마을이에요"},
			{"사려니 숲길", "삼나무 숲 사이로 빛이 쏟아져요"},
		},
	},
	{
		Suggestion: Suggestion{"코펜하겐", "운하와 자전거, 담백한 북유럽 색감이 있어요"},
		Aliases:    []string{"copenhagen"},
		Spots: []Suggestion{
			{"뉘하운 운하", "알록달록한 항구 건물이 줄지어 있어요"},
			{"이스라엘 광장 시장", "꽃과 빵 냄새가 가득한 시장이에요"},
		},
	},
}

var genericSpots = []Suggestion{
	{"오래된 동네 카페", "현지 사람들의 일상이 묻어나는 곳이에요"},
	{"현지 재래시장", "색과 소리가 가득해 스냅 사진이 살아나요"},
	{"강변 산책로", "바람과 빛이 좋아 걷기만 해도 좋아요"},
	{"해 질 녘 전망대", "도시가 물드는 시간을 담을 수 있어요"},
	{"작은 독립 서점", "조용하고 따뜻한 분위기를 담기 좋아요"},
}

var actionTable = []Suggestion{
	{"카페 창가에서 책 읽기", "느긋한 오후의 공기를 담을 수 있어요"},
	{"골목길 천천히 걷기", "우연히 마주치는 장면이 가장 좋은 사진이 돼요"},
	{"필름 카메라로 거리 스냅 찍기", "여행자다운 순간을 남길 수 있어요"},
	{"노천 시장에서 꽃 고르기", "색감이 풍부한 장면이 나와요"},
	{"해 질 녘 강변 산책하기", "골든아워의 빛이 얼굴을 부드럽게 감싸요"},
	{"트램 창밖 바라보기", "움직이는 도시를 배경으로 담을 수 있어요"},
}

var outfitTable = []Suggestion{
	{"베이지 트렌치코트에 로퍼", "어느 도시에서나 클래식하게 어울려요"},
	{"화이트 셔츠와 와이드 데님", "깔끔하고 자연스러운 여행 룩이에요"},
	{"니트 베스트와 플리츠 스커트", "빈티지한 필름 톤과 잘 맞아요"},
	{"린넨 셔츠에 밀짚모자", "햇살 좋은 날 가볍고 산뜻해요"},
	{"블랙 터틀넥과 슬랙스", "도시의 밤과 대비가 멋져요"},
	{"플로럴 원피스에 카디건", "부드럽고 따뜻한 분위기를 줘요"},
}

var poseTable = []Suggestion{
	{"걷다가 뒤돌아보는 모습", "자연스럽고 생동감 있는 순간이 담겨요"},
	{"창밖을 바라보는 옆모습", "조용하고 감성적인 분위기가 나요"},
	{"카메라를 들고 초점을 맞추는 모습", "여행 기록자의 느낌을 살려요"},
	{"벤치에 앉아 책장을 넘기는 모습", "여유로운 하루를 표현해요"},
	{"난간에 기대어 먼 곳을 보는 모습", "풍경과 인물이 함께 살아나요"},
}

// StaticCatalog serves the built-in tables.
type StaticCatalog struct {
	intn func(n int) int
}

// NewStaticCatalog uses math/rand for draws.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{intn: rand.Intn}
}

// NewStaticCatalogWithRand lets callers control the draws; intn must return [0, n).
func NewStaticCatalogWithRand(intn func(n int) int) *StaticCatalog {
	return &StaticCatalog{intn: intn}
}

func (c *StaticCatalog) PickCity(picks Picks) Suggestion {
	cities := make([]Suggestion, len(cityTable))
	for i, e := range cityTable {
		cities[i] = e.Suggestion
	}
	return c.draw(SlotCity, cities, picks)
}

func (c *StaticCatalog) PickSpot(city string, picks Picks) Suggestion {
	return c.draw(SlotSpot, SpotsFor(city), picks)
}

func (c *StaticCatalog) PickAction(picks Picks) Suggestion {
	return c.draw(SlotAction, actionTable, picks)
}

func (c *StaticCatalog) PickOutfit(picks Picks) Suggestion {
	return c.draw(SlotOutfit, outfitTable, picks)
}

func (c *StaticCatalog) PickPose(picks Picks) Suggestion {
	return c.draw(SlotPose, poseTable, picks)
}

// draw picks a uniform index, resampling while it equals the previous draw for the slot.
func (c *StaticCatalog) draw(slot Slot, list []Suggestion, picks Picks) Suggestion {
	if len(list) == 0 {
		return Suggestion{}
	}
	i := c.intn(len(list))
	if last, ok := picks[slot]; ok && len(list) > 1 {
		for i == last {
			i = c.intn(len(list))
		}
	}
	if picks != nil {
		picks[slot] = i
	}
	return list[i]
}

// SpotsFor returns the curated spots for a city, or the generic list.
func SpotsFor(city string) []Suggestion {
	key := compact(city)
	if key == "" {
		return genericSpots
	}
	for _, e := range cityTable {
		names := append([]string{e.Value}, e.Aliases...)
		for _, n := range names {
			if strings.Contains(key, compact(n)) {
				return e.Spots
			}
		}
	}
	return genericSpots
}
