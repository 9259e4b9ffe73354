package model

// Attempt is an append-only record of one graded submission.
// swagger:model Attempt
type Attempt struct {
	BaseModel
	UserID     uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	UserAnswer string `gorm:"type:text" json:"userAnswer"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	SolveTime  int    `gorm:"default:0" json:"solveTime"` // seconds from issue to submit
}

func (Attempt) TableName() string {
	return "attempts"
}
