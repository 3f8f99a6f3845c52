package proto

import "encoding/binary"

// Key codes mirror hal.KeyCode so the protocol does not depend on hal.
const (
	KeyNone uint16 = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
)

// KeyPayload encodes a MsgKey payload.
//
// Layout (little-endian):
//   - u16: key code (KeyNone for text input)
//   - i32: rune (0 when code is set)
func KeyPayload(code uint16, r rune) []byte {
	buf := make([]byte, 6)
	binary.LittleEndian.PutUint16(buf[0:2], code)
	binary.LittleEndian.PutUint32(buf[2:6], uint32(r))
	return buf
}

func DecodeKeyPayload(b []byte) (code uint16, r rune, ok bool) {
	if len(b) != 6 {
		return 0, 0, false
	}
	code = binary.LittleEndian.Uint16(b[0:2])
	r = rune(int32(binary.LittleEndian.Uint32(b[2:6])))
	return code, r, true
}
