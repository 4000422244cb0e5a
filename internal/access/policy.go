package access

// Snapshot 單一活動做授權判斷所需的最小狀態
type Snapshot struct {
	CreatorID     int
	IsPrivate     bool
	IsParticipant bool
}

func (s Snapshot) isCreator(sub Subject) bool {
	return !sub.IsAnonymous() && sub.UserID() == s.CreatorID
}

// CanRead 公開活動任何人可讀；私人活動只有建立者與參加者可讀。
// 建立者不依賴參加者資料列，即使該列不存在也放行。
func CanRead(sub Subject, snap Snapshot) bool {
	if !snap.IsPrivate {
		return true
	}
	if sub.IsAnonymous() {
		return false
	}
	return snap.isCreator(sub) || snap.IsParticipant
}

// CanEngage 留言與按讚。公開活動開放給所有已登入使用者，
// 私人活動與 CanRead 同一道門檻。
func CanEngage(sub Subject, snap Snapshot) bool {
	if sub.IsAnonymous() {
		return false
	}
	if !snap.IsPrivate {
		return true
	}
	return snap.isCreator(sub) || snap.IsParticipant
}

// CanContribute 上傳圖片。不論公開或私人都要求參加者身分，
// 與 CanEngage 是兩道不同的門，不可合併。
func CanContribute(sub Subject, snap Snapshot) bool {
	if sub.IsAnonymous() {
		return false
	}
	return snap.isCreator(sub) || snap.IsParticipant
}
