package model

const (
	MinLectureWeek = 1
	MaxLectureWeek = 15
)

// swagger:model LectureMaterial
type LectureMaterial struct {
	BaseModel
	Week     int    `gorm:"index;not null" json:"week"`
	Filename string `gorm:"size:255;not null" json:"filename"`
	URL      string `gorm:"size:512" json:"url"`
}

func (LectureMaterial) TableName() string {
	return "lecture_materials"
}
