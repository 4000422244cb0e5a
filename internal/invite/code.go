package invite

import "math/rand/v2"

const (
	// Alphabet 邀請碼字元集，36 個符號
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length 邀請碼固定長度
	Length = 8
)

// Generate 產生 8 碼邀請碼。全域唯一性不在這裡保證，
// 由 events.invite_code 的 unique index 加上衝突重試處理。
func Generate() string {
	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = Alphabet[rand.IntN(len(Alphabet))]
	}
	return string(buf)
}

// IsWellFormed 檢查格式：恰好 8 碼且皆為 A-Z 或 0-9
func IsWellFormed(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
