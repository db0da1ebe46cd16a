package locale

import (
	"strings"
)

// Tag is a supported UI locale.
type Tag string

const (
	ZhCN Tag = "zh-CN"
	ZhTW Tag = "zh-TW"
	EnUS Tag = "en-US"
	ThTH Tag = "th-TH"
	ViVN Tag = "vi-VN"
	KoKR Tag = "ko-KR"

	Default = ZhCN

	// DefaultServerCode is sent when the locale has no server mapping
	DefaultServerCode = "zh"
)

// Supported lists the tags in display order
var Supported = []Tag{ZhCN, ZhTW, EnUS, ThTH, ViVN, KoKR}

var aliases = map[string]Tag{
	"zh": ZhCN, "cn": ZhCN, "zh-cn": ZhCN, "zh_cn": ZhCN,
	"tw": ZhTW, "hk": ZhTW, "zh-tw": ZhTW, "zh_tw": ZhTW,
	"en": EnUS, "us": EnUS, "en-us": EnUS, "en_us": EnUS,
	"th": ThTH, "th-th": ThTH, "th_th": ThTH,
	"vi": ViVN, "vn": ViVN, "vi-vn": ViVN, "vi_vn": ViVN,
	"ko": KoKR, "kr": KoKR, "ko-kr": KoKR, "ko_kr": KoKR,
}

var serverCodes = map[Tag]string{
	ZhCN: "zh",
	ZhTW: "hk",
	EnUS: "en",
	ThTH: "th",
	ViVN: "vi",
	KoKR: "ko",
}

// Parse maps a user-supplied language value (case-insensitive alias or
// canonical tag) to a supported tag.
func Parse(raw string) (Tag, bool) {
	tag, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]
	return tag, ok
}

func (t Tag) IsSupported() bool {
	_, ok := serverCodes[t]
	return ok
}

// ServerCode is the language code the member API expects.
func (t Tag) ServerCode() string {
	if code, ok := serverCodes[t]; ok {
		return code
	}
	return DefaultServerCode
}

func (t Tag) String() string {
	return string(t)
}
