// README: Curator reply templates per step.
package dialogue

import (
	"fmt"
	"strings"
)

const greetingReply = `안녕하세요! 저는 Trip Kit의 트래블 큐레이터예요 ✈️

당신만의 여행 감성을 함께 찾아볼게요.
먼저, **어느 도시**로 떠나고 싶으세요?

정하지 못했다면 "추천해줘"라고 말씀해 주세요.`

const closingReply = "좋아요! 🎁 이제 당신만의 여행 이미지를 만들러 가볼게요."

var stepNouns = map[Step]string{
	StepGreeting: "도시",
	StepSpot:     "장소",
	StepAction:   "활동",
	StepOutfit:   "스타일",
	StepPose:     "포즈",
}

var ackTemplates = map[Step]string{
	StepGreeting: "**%s**, 좋은 선택이에요! ✨",
	StepSpot:     "**%s**, 분위기 있는 곳이네요.",
	StepAction:   "**%s**, 생각만 해도 설레요.",
	StepConcept:  "**%s** 컨셉으로 정했어요. 🎞️",
	StepOutfit:   "**%s**, 사진에 잘 어울릴 것 같아요.",
	StepPose:     "**%s**, 자연스러운 장면이 그려져요.",
	StepFilm:     "**%s**, 멋진 필름이에요.",
	StepConfirm:  "**%s**까지, 모든 준비가 끝났어요! 📸",
}

// retryMessages cycle by retry count and stay on the last entry.
var retryMessages = map[Step][]string{
	StepGreeting: {
		"도시 이름을 알려주시겠어요? 예: 파리, 교토, 리스본",
		`가고 싶은 도시를 한 단어로 말씀해 주세요. 고민되면 "추천해줘"라고 해주셔도 돼요!`,
		`정하기 어렵다면 "추천해줘"라고 말씀해 주세요. 제가 골라드릴게요 😊`,
	},
	StepSpot: {
		"어떤 장소인지 조금만 더 구체적으로 알려주세요. 예: 몽마르트 언덕, 강변 카페",
		"가보고 싶은 곳의 이름이나 분위기를 말씀해 주세요.",
		`떠오르는 곳이 없다면 "추천해줘"라고 해주세요!`,
	},
	StepAction: {
		"그곳에서 하고 싶은 일을 조금 더 자세히 말씀해 주세요. 예: 카페에서 책 읽기",
		"어떤 순간을 사진으로 남기고 싶으세요?",
		`고민되면 "추천해줘"라고 말씀해 주세요!`,
	},
	StepOutfit: {
		"어떤 스타일의 옷을 입고 싶으세요? 예: 베이지 트렌치코트, 린넨 셔츠",
		"색감이나 아이템을 하나만 알려주셔도 좋아요.",
		`잘 모르겠다면 "추천해줘"라고 말씀해 주세요!`,
	},
	StepPose: {
		"사진 속에서 어떤 모습이면 좋을까요? 예: 걷다가 뒤돌아보는 모습",
		"앉아 있는 모습, 걷는 모습처럼 간단히 말씀해 주셔도 돼요.",
		`정하기 어렵다면 "추천해줘"라고 해주세요!`,
	},
}

// RetryMessages returns the retry phrasings for a step.
func RetryMessages(step Step) []string {
	return retryMessages[step]
}

// GreetingReply is the opening message of every conversation.
func GreetingReply() string {
	return greetingReply
}

func retryReply(step Step, count int) string {
	msgs := retryMessages[step]
	if len(msgs) == 0 {
		return ""
	}
	if count >= len(msgs) {
		count = len(msgs) - 1
	}
	if count < 0 {
		count = 0
	}
	return msgs[count]
}

// prompt is the question asked on entering a step.
func prompt(step Step, p Profile) string {
	switch step {
	case StepGreeting:
		return greetingReply
	case StepSpot:
		return fmt.Sprintf("%s에서 꼭 가보고 싶은 **장소**가 있나요? 골목, 카페, 전망대 어디든 좋아요.", p.City)
	case StepAction:
		return "그곳에서 **무엇을 하고 싶으세요?** 책 읽기, 산책하기처럼 편하게 말씀해 주세요."
	case StepConcept:
		var b strings.Builder
		b.WriteString("이제 사진의 **컨셉**을 골라볼까요?\n")
		for _, c := range concepts {
			fmt.Fprintf(&b, "\n- %s (%s): %s", c.NameKo, c.Name, c.Tagline)
		}
		return b.String()
	case StepOutfit:
		return "어떤 **옷차림**으로 떠나고 싶으세요?"
	case StepPose:
		return "사진 속 **포즈**는 어떤 느낌이 좋을까요?"
	case StepFilm:
		if c, ok := LookupConcept(p.ConceptID); ok {
			return fmt.Sprintf("**%s** 컨셉에는 %s 같은 필름이 잘 어울려요.\n어떤 **필름**으로 담아볼까요?",
				c.NameKo, strings.Join(c.RecommendedFilms, ", "))
		}
		return "어떤 **필름**으로 담아볼까요?"
	case StepConfirm:
		if c, ok := LookupConcept(p.ConceptID); ok {
			return fmt.Sprintf("마지막으로, 어떤 **카메라**로 찍고 싶으세요?\n%s 같은 카메라를 추천드려요.",
				strings.Join(c.CameraModels, ", "))
		}
		return "마지막으로, 어떤 **카메라**로 찍고 싶으세요?"
	}
	return ""
}

func ack(step Step, value string) string {
	if step == StepConcept {
		if c, ok := LookupConcept(ConceptID(value)); ok {
			value = c.NameKo
		}
	}
	return fmt.Sprintf(ackTemplates[step], value)
}

// acceptedReply acknowledges the value, re-renders the running summary and asks the next question.
func acceptedReply(step Step, value string, p Profile) string {
	next := step.Next()
	if next == StepComplete {
		return fmt.Sprintf("%s\n\n🧳 나의 Trip Kit\n%s\n\n이대로 여행 이미지를 만들어 볼까요? (네 / 다시 할래요)",
			ack(step, value), p.Summary())
	}
	return fmt.Sprintf("%s\n\n📋 지금까지 정리\n%s\n\n%s", ack(step, value), p.Summary(), prompt(next, p))
}

func recommendReply(step Step, s Suggestion) string {
	return fmt.Sprintf("제가 하나 골라볼게요! 이런 %s 어떠세요?\n\n👉 **%s**\n%s\n\n%s",
		stepNouns[step], s.Value, s.Reason, confirmHint)
}

func alternativeReply(step Step, s Suggestion) string {
	return fmt.Sprintf("그럼 이 %s는 어떠세요?\n\n👉 **%s**\n%s\n\n%s",
		stepNouns[step], s.Value, s.Reason, confirmHint)
}

const confirmHint = `마음에 드시면 "네", 다른 추천을 원하시면 "다른 거"라고 말씀해 주세요.`
