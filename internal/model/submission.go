package model

// SubmissionStatus 提交记录状态
// 流转: pending → verified → checked_in，以及 checked_in → verified（取消签到）
type SubmissionStatus string

const (
	StatusPending   SubmissionStatus = "pending"
	StatusVerified  SubmissionStatus = "verified"
	StatusCheckedIn SubmissionStatus = "checked_in"
)

// Valid 是否为已知状态
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusCheckedIn:
		return true
	}
	return false
}

// Submission 付款凭证提交表（表 submissions）
// phone 为规范化后的手机号，唯一且创建后不可修改
type Submission struct {
	ID                 uint             `gorm:"primaryKey;autoIncrement"                    json:"id"`
	Name               string           `gorm:"type:varchar(255);not null"                  json:"name"`
	Phone              string           `gorm:"type:varchar(25);not null;uniqueIndex"       json:"phone"`
	Screenshot         string           `gorm:"type:varchar(255);not null"                  json:"screenshot"`
	ScreenshotPublicID string           `gorm:"type:varchar(255);not null"                  json:"screenshot_public_id"`
	Status             SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	BaseModel
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }
