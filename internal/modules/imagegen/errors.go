package imagegen

import "tripkit/internal/apperr"

const (
	MsgAuthFailed   = "이미지 생성 서비스 연결에 실패했습니다. 잠시 후 다시 시도해 주세요."
	MsgUnreachable  = "서버 연결에 실패했습니다. 잠시 후 다시 시도해 주세요."
	MsgRateLimited  = "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."
	MsgBlocked      = "요청한 이미지를 생성할 수 없습니다. 다른 내용으로 시도해 주세요."
	MsgGenericError = "이미지 생성 중 오류가 발생했습니다. 다시 시도해 주세요."
)

// errorRules is order sensitive: an auth failure that also says "429" reports as auth.
var errorRules = apperr.NewRules(MsgGenericError,
	apperr.Rule{Match: apperr.ContainsAny("401", "invalid"), Message: MsgAuthFailed},
	apperr.Rule{Match: apperr.ContainsAny(apperr.UnreachableMarkers...), Message: MsgUnreachable},
	apperr.Rule{Match: apperr.ContainsAny("rate limit", "429"), Message: MsgRateLimited},
	apperr.Rule{Match: apperr.ContainsAny("content_policy", "safety"), Message: MsgBlocked},
)

// UserMessage classifies a raw generation error.
func UserMessage(err error) string {
	return errorRules.Classify(err)
}
