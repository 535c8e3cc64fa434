package recommend

import (
	"context"
	"errors"
	"fmt"

	"tripkit/internal/ai"
)

// LLMFallback asks the language model for destinations when the agent is down.
type LLMFallback struct {
	provider ai.LLMProvider
	count    int
}

func NewLLMFallback(provider ai.LLMProvider) *LLMFallback {
	return &LLMFallback{provider: provider, count: 3}
}

func (f *LLMFallback) Suggest(ctx context.Context, req Request) ([]Destination, error) {
	ideas, err := f.provider.SuggestDestinations(ctx, ai.DestinationBrief{
		Concept:           req.Concept,
		Mood:              req.Preferences.Mood,
		Aesthetic:         req.Preferences.Aesthetic,
		Duration:          req.Preferences.Duration,
		Interests:         req.Preferences.Interests,
		TravelScene:       req.TravelScene,
		TravelDestination: req.TravelDestination,
		Count:             f.count,
	})
	if err != nil {
		return nil, fmt.Errorf("llm fallback: %w", err)
	}
	if len(ideas) == 0 {
		return nil, errors.New("llm fallback: no destinations")
	}

	out := make([]Destination, 0, len(ideas))
	for i, idea := range ideas {
		out = append(out, Destination{
			ID:               fmt.Sprintf("dest_ai_%d", i+1),
			Name:             idea.Name,
			City:             idea.City,
			Country:          idea.Country,
			Description:      idea.Description,
			MatchReason:      idea.MatchReason,
			LocalVibe:        idea.LocalVibe,
			WhyHidden:        idea.WhyHidden,
			BestTimeToVisit:  idea.BestTimeToVisit,
			PhotographyScore: idea.PhotographyScore,
			SafetyRating:     idea.SafetyRating,
			Tags:             idea.Tags,
			PhotographyTips:  idea.PhotographyTips,
		})
	}
	return out, nil
}

// StaticDestinations is the last resort list served when every source failed.
func StaticDestinations() []Destination {
	return []Destination{
		{
			ID:                     "dest_fallback_1",
			Name:                   "핀란드 로바니에미 산타마을의 순백 겨울",
			City:                   "로바니에미",
			Country:                "핀란드",
			Description:            "북극선 위에 위치한 진짜 산타의 고향. 눈 덮인 숲 사이로 허스키들이 달리고, 오로라가 하늘을 수놓는 겨울 왕국입니다.",
			MatchReason:            "필름 카메라로 담으면 마치 빈티지 크리스마스 카드 같은 사진이 나옵니다.",
			LocalVibe:              "눈 내리는 고요 속 따뜻한 핫초코 한 잔의 여유",
			WhyHidden:              "대부분 관광객은 산타마을만 방문하지만, 진짜 매력은 주변 숲속 오두막과 현지인 카페에 있습니다",
			BestTimeToVisit:        "12월 중순 - 1월 (오로라 시즌)",
			PhotographyScore:       10,
			TransportAccessibility: "moderate",
			SafetyRating:           10,
			EstimatedBudget:        "$$$",
			Tags:                   []string{"winter", "aurora", "snow", "christmas", "nature"},
			PhotographyTips: []string{
				"오로라 촬영 시 삼각대 필수, ISO 3200 이상 권장",
				"눈 덮인 숲에서 역광으로 촬영하면 몽환적인 분위기",
			},
			StoryPrompt: "오로라 아래서 소원을 빌며, 세상에서 가장 특별한 크리스마스를 보내다",
			Activities: []Activity{
				{Name: "허스키 썰매 어드벤처", Description: "눈 덮인 북극 숲을 가로지르는 허스키 썰매 체험", Duration: "2-3시간", BestTime: "오전 10시"},
				{Name: "오로라 헌팅 투어", Description: "빛 공해 없는 숲속에서 오로라를 기다리며", Duration: "4-5시간", BestTime: "밤 10시 - 새벽 2시"},
			},
		},
		{
			ID:                     "dest_fallback_2",
			Name:                   "프랑스 고르드, 중세로의 시간 여행",
			City:                   "고르드",
			Country:                "프랑스",
			Description:            "프로방스 언덕 위 돌로 지어진 마을. 석양이 내려앉으면 마을 전체가 황금빛으로 물듭니다.",
			MatchReason:            "중세의 골목과 라벤더 밭은 필름 특유의 따뜻한 톤과 잘 어울립니다.",
			LocalVibe:              "돌담길 사이로 흐르는 느린 오후",
			WhyHidden:              "프로방스를 찾는 여행자 대부분이 큰 도시에 머무르며 이 작은 마을을 지나칩니다",
			BestTimeToVisit:        "6월 말 - 7월 (라벤더 개화기)",
			PhotographyScore:       9,
			TransportAccessibility: "challenging",
			SafetyRating:           9,
			EstimatedBudget:        "$$",
			Tags:                   []string{"medieval", "lavender", "sunset", "village"},
			PhotographyTips:        []string{"마을 전경은 D15 도로 전망대에서 석양 무렵 촬영"},
			StoryPrompt:            "라벤더 향 속에서 중세 마을의 하루를 기록하다",
			Activities: []Activity{
				{Name: "석양의 마을 전경 감상", Description: "언덕 전망대에서 황금빛 마을 바라보기", BestTime: "일몰 30분 전"},
				{Name: "라벤더 밭 새벽 산책", Description: "세낭크 수도원 앞 라벤더 밭 걷기", BestTime: "새벽 6시"},
			},
		},
		{
			ID:                     "dest_fallback_3",
			Name:                   "일본 나오시마, 예술이 숨 쉬는 섬",
			City:                   "나오시마",
			Country:                "일본",
			Description:            "세토 내해의 작은 섬 곳곳에 미술관과 설치 작품이 자연과 어우러져 있습니다.",
			MatchReason:            "바다와 예술이 만나는 풍경은 조용한 감성 여행 기록에 어울립니다.",
			LocalVibe:              "자전거 바퀴 소리와 파도 소리만 남는 섬의 오후",
			WhyHidden:              "도쿄와 교토에 비해 찾아가기 번거로워 여유로운 분위기가 남아 있습니다",
			BestTimeToVisit:        "4월 - 5월, 10월 - 11월",
			PhotographyScore:       9,
			TransportAccessibility: "moderate",
			SafetyRating:           10,
			EstimatedBudget:        "$$",
			Tags:                   []string{"art", "island", "sea", "architecture"},
			PhotographyTips:        []string{"노란 호박 작품은 오전 순광에서 색이 가장 선명합니다"},
			StoryPrompt:            "섬을 자전거로 돌며 예술 작품 사이의 나만의 장면을 찾다",
			Activities: []Activity{
				{Name: "자전거로 섬 일주", Description: "해안 도로를 따라 미술관 사이를 달리기", Duration: "반나절"},
				{Name: "치추 미술관 명상", Description: "자연광으로만 감상하는 모네의 수련", Duration: "1-2시간"},
			},
		},
	}
}
