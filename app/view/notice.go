package view

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a message for the operator; the page decides how to show it.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func ErrorNotice(message string) *Notice {
	return &Notice{Level: NoticeError, Message: message}
}

func SuccessNotice(message string) *Notice {
	return &Notice{Level: NoticeSuccess, Message: message}
}

// StatItem is one label/value line of a stats block.
type StatItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
