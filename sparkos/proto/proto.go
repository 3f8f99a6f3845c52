package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgKey
	MsgRunStart
	MsgRunCancel
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgKey:
		return "key"
	case MsgRunStart:
		return "run_start"
	case MsgRunCancel:
		return "run_cancel"
	default:
		return "unknown"
	}
}
