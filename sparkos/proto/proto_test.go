package proto

import "testing"

func TestKeyPayload(t *testing.T) {
	code, r, ok := DecodeKeyPayload(KeyPayload(KeyNone, 'π'))
	if !ok || code != KeyNone || r != 'π' {
		t.Fatalf("DecodeKeyPayload() = %d, %q, %v, want 0, 'π', true", code, r, ok)
	}
	code, _, ok = DecodeKeyPayload(KeyPayload(KeyTab, 0))
	if !ok || code != KeyTab {
		t.Fatalf("DecodeKeyPayload() code = %d, want %d", code, KeyTab)
	}
	if _, _, ok := DecodeKeyPayload([]byte{1, 2}); ok {
		t.Fatal("DecodeKeyPayload(short) ok = true, want false")
	}
}

func TestRunStartPayload(t *testing.T) {
	count, mode, ok := DecodeRunStartPayload(RunStartPayload(5000, 2))
	if !ok || count != 5000 || mode != 2 {
		t.Fatalf("DecodeRunStartPayload() = %d, %d, %v, want 5000, 2, true", count, mode, ok)
	}
	if _, _, ok := DecodeRunStartPayload(nil); ok {
		t.Fatal("DecodeRunStartPayload(nil) ok = true, want false")
	}
}

func TestKindString(t *testing.T) {
	if got := MsgRunStart.String(); got != "run_start" {
		t.Fatalf("MsgRunStart.String() = %q, want run_start", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Fatalf("Kind(99).String() = %q, want unknown", got)
	}
}

func TestLogLinePayload(t *testing.T) {
	if got := string(LogLinePayload("hello\n", 0)); got != "hello" {
		t.Fatalf("LogLinePayload() = %q, want %q", got, "hello")
	}
	// "π" is two bytes; a cut through it must back off to the rune start.
	if got := string(LogLinePayload("aπb", 2)); got != "a" {
		t.Fatalf("LogLinePayload(cut) = %q, want %q", got, "a")
	}
	if got := string(LogLinePayload("aπb", 3)); got != "aπ" {
		t.Fatalf("LogLinePayload(cut) = %q, want %q", got, "aπ")
	}
}
