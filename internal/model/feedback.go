package model

// Feedback is an append-only free-text comment on a question.
// swagger:model Feedback
type Feedback struct {
	BaseModel
	UserID     uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Comment    string `gorm:"type:text;not null" json:"comment"`
}

func (Feedback) TableName() string {
	return "feedback"
}
