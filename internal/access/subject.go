package access

// Subject 請求主體：已驗證的使用者或匿名訪客。
// 零值即匿名；身分驗證由上游完成，這裡只拿到結果。
type Subject struct {
	userID int
}

func User(id int) Subject {
	return Subject{userID: id}
}

func Anonymous() Subject {
	return Subject{}
}

func (s Subject) UserID() int {
	return s.userID
}

func (s Subject) IsAnonymous() bool {
	return s.userID == 0
}
