package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const curatorSystemPrompt = `당신은 Trip Kit의 트래블 큐레이터입니다. 따뜻하고 감성적인 여행 전문가입니다.

역할:
1. 사용자와 친근하게 대화하며 여행 취향을 파악합니다.
2. 단계별로 정보를 수집합니다: 도시 → 장소 → 행동 → 컨셉 → 의상 → 포즈 → 필름 → 카메라
3. "추천해줘", "아무거나" 같은 답변에는 창의적인 추천을 하나 제안하고 확인을 받습니다.

대화 스타일:
- 따뜻한 존댓말, 적절한 이모지
- 질문은 한 번에 하나씩
- 줄바꿈으로 가독성 확보

유효 답변 판별:
- 부정 표현("싫어", "별로", "다른 거")은 저장하지 않고 새로운 추천을 제공합니다.
- 거부된 항목은 rejectedItems에 추가하고 다시 추천하지 않습니다.

JSON 응답 형식:
{
  "reply": "사용자에게 보낼 메시지",
  "currentStep": "현재 단계",
  "nextStep": "다음 단계",
  "isComplete": false,
  "collectedData": {
    "city": null, "spotName": null, "mainAction": null, "conceptId": null,
    "outfitStyle": null, "posePreference": null, "filmType": null, "cameraModel": null
  },
  "rejectedItems": {
    "cities": [], "spots": [], "actions": [], "concepts": [],
    "outfits": [], "poses": [], "films": [], "cameras": []
  }
}

단계: greeting/spot/action/concept/outfit/pose/film/confirm/complete
컨셉 옵션: flaneur/filmlog/midnight/pastoral/noir/seaside

collectedData 보존 규칙: 이미 수집된 값은 절대 null로 덮어쓰지 마세요.`

// buildTurnPrompt combines the system prompt, collected state, history and the new message.
func buildTurnPrompt(in TurnInput) string {
	var b strings.Builder
	b.WriteString(curatorSystemPrompt)

	collected, _ := json.Marshal(in.Collected)
	rejected, _ := json.Marshal(in.Rejected)
	fmt.Fprintf(&b, "\n\n현재 단계: %s\n수집된 정보: %s\n거부된 항목: %s\n", in.CurrentStep, collected, rejected)

	if len(in.History) > 0 {
		b.WriteString("\n대화 기록:\n")
		for _, m := range in.History {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
	}

	fmt.Fprintf(&b, "\nUser Message: %s", in.Message)
	return b.String()
}

// buildDestinationPrompt asks for hidden destinations in a fixed JSON shape.
func buildDestinationPrompt(brief DestinationBrief) string {
	count := brief.Count
	if count <= 0 {
		count = 3
	}
	var b strings.Builder
	fmt.Fprintf(&b, `Role: You are a travel curator for "Trip Kit" who finds lesser-known, photogenic places.
Suggest %d hidden destinations. Avoid the most famous tourist landmarks.

Traveller brief:
`, count)
	writeField(&b, "Concept", brief.Concept)
	writeField(&b, "Mood", brief.Mood)
	writeField(&b, "Aesthetic", brief.Aesthetic)
	writeField(&b, "Duration", brief.Duration)
	writeField(&b, "Interests", strings.Join(brief.Interests, ", "))
	writeField(&b, "Scene", brief.TravelScene)
	writeField(&b, "Preferred destination", brief.TravelDestination)

	b.WriteString(`
Respond in Korean text values with this JSON shape only:
{"destinations":[{"name":"","city":"","country":"","description":"","matchReason":"","localVibe":"","whyHidden":"",
"bestTimeToVisit":"","photographyScore":0,"safetyRating":0,"tags":[],"photographyTips":[]}]}
photographyScore and safetyRating are integers from 1 to 10.`)
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}
