package access

import "fmt"

// ReadableEventsCondition 產生與 CanRead 等價的 SQL 條件，供列表與搜尋查詢使用。
// eventAlias 是查詢中 events 資料表的別名，argPos 是第一個可用的參數位置。
// 回傳條件字串、查詢參數與下一個可用的參數位置。
//
// 條件與 CanRead 的三個分支一一對應：非私人、主體是建立者、主體有參加者資料列。
// 任何改動必須同步修改 CanRead，兩者不一致會漏出私人內容。
func ReadableEventsCondition(sub Subject, eventAlias string, argPos int) (string, []any, int) {
	if sub.IsAnonymous() {
		return fmt.Sprintf("%s.is_private = FALSE", eventAlias), nil, argPos
	}

	cond := fmt.Sprintf(`(
		%[1]s.is_private = FALSE
		OR %[1]s.created_by = $%[2]d
		OR EXISTS (
			SELECT 1 FROM event_participants ep
			WHERE ep.event_id = %[1]s.id AND ep.user_id = $%[2]d
		)
	)`, eventAlias, argPos)

	return cond, []any{sub.UserID()}, argPos + 1
}
