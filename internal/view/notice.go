package view

// NoticeKind identifies a user-facing message
type NoticeKind string

const (
	NoticeNotFound       NoticeKind = "not_found"
	NoticeInsufficient   NoticeKind = "insufficient_candidates"
	NoticeFetchFailed    NoticeKind = "fetch_failed"
	NoticeLocationFailed NoticeKind = "location_failed"
	NoticeNoPanorama     NoticeKind = "no_panorama"
)

var noticeMessages = map[NoticeKind]string{
	NoticeNotFound:       "주변에 추천할 음식점을 찾지 못했어요!",
	NoticeInsufficient:   "주변에 추첨할 음식점이 5개 미만입니다.",
	NoticeFetchFailed:    "음식점을 불러오는 데 실패했습니다.",
	NoticeLocationFailed: "위치 정보를 가져오는 데 실패했습니다. 위치 권한을 허용했는지 확인해주세요.",
	NoticeNoPanorama:     "이 위치에는 로드뷰가 없습니다.",
}

// Notice is a message shown to the user
type Notice struct {
	Kind    NoticeKind
	Message string
}

func newNotice(kind NoticeKind) Notice {
	return Notice{Kind: kind, Message: noticeMessages[kind]}
}
