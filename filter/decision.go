package filter

// Decision 过滤器对单个事件的三值裁决
type Decision int

const (
	// Deny 立即拒绝，链上后续过滤器不再参与
	Deny Decision = -1
	// Neutral 不表态，交给链上的下一个过滤器
	Neutral Decision = 0
	// Accept 立即放行，链上后续过滤器不再参与
	Accept Decision = 1
)

// String 返回裁决的字符串表示
func (d Decision) String() string {
	switch d {
	case Deny:
		return "DENY"
	case Neutral:
		return "NEUTRAL"
	case Accept:
		return "ACCEPT"
	default:
		return "UNKNOWN"
	}
}
