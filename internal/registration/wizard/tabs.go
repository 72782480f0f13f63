package wizard

// Tab is a wizard stage. Tabs are ordered; Next and Previous move by one.
type Tab int

const (
	TabBusinessDetails Tab = iota
	TabHours
	TabServices
)

func (t Tab) String() string {
	switch t {
	case TabBusinessDetails:
		return "business"
	case TabHours:
		return "hours"
	case TabServices:
		return "services"
	default:
		return "unknown"
	}
}

func (t Tab) next() Tab {
	if t >= TabServices {
		return TabServices
	}
	return t + 1
}

func (t Tab) previous() Tab {
	if t <= TabBusinessDetails {
		return TabBusinessDetails
	}
	return t - 1
}

// NoticeLevel distinguishes success and error notices.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

const MsgSubmitted = "Business details submitted successfully!"
