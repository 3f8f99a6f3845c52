package proto

import "encoding/binary"

// RunStartPayload encodes a MsgRunStart payload.
//
// Layout (little-endian):
//   - u32: requested sample count (0 selects the receiver's default)
//   - u8: mode (montecarlo.Mode)
func RunStartPayload(count uint32, mode uint8) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint32(buf[0:4], count)
	buf[4] = mode
	return buf
}

func DecodeRunStartPayload(b []byte) (count uint32, mode uint8, ok bool) {
	if len(b) != 5 {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(b[0:4]), b[4], true
}
