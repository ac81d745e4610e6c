package navigation

type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

func (k NoticeKind) String() string {
	if k == NoticeError {
		return "error"
	}
	return "success"
}

// Notice is a transient message for the user. It is never a fault.
type Notice struct {
	Kind NoticeKind
	Text string
}

func SuccessNotice(text string) *Notice { return &Notice{Kind: NoticeSuccess, Text: text} }
func ErrorNotice(text string) *Notice   { return &Notice{Kind: NoticeError, Text: text} }
