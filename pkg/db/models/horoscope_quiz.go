package models

import "gorm.io/datatypes"

// QuizOption is one answer choice; Correct marks the right answer on a quiz and
// the selected answer on a user attempt.
type QuizOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"ans"`
}

// QuizOptions holds the four fixed choices A to D.
type QuizOptions struct {
	A QuizOption `json:"A"`
	B QuizOption `json:"B"`
	C QuizOption `json:"C"`
	D QuizOption `json:"D"`
}

// Flags returns the ans flags in A..D order.
func (o QuizOptions) Flags() [4]bool {
	return [4]bool{o.A.Correct, o.B.Correct, o.C.Correct, o.D.Correct}
}

type HoroscopeQuiz struct {
	ID           int64                             `gorm:"column:question_id;primaryKey;autoIncrement" json:"question_id"`
	TimeMinutes  int                               `gorm:"column:time_minutes;not null" json:"time"`
	QuestionText string                            `gorm:"column:question_text;type:text;not null" json:"question_text"`
	Answer       datatypes.JSONType[QuizOptions]   `gorm:"column:answer" json:"answer"`
	Audit
}

func (HoroscopeQuiz) TableName() string { return "horoscope_quizzes" }

// HoroscopeQuizMapUser is a user's attempt at a quiz question.
type HoroscopeQuizMapUser struct {
	ID         int64                           `gorm:"column:quiz_map_user_id;primaryKey;autoIncrement" json:"quiz_map_user_id"`
	QuestionID int64                           `gorm:"column:question_id;not null;index" json:"question_id"`
	Answers    datatypes.JSONType[QuizOptions] `gorm:"column:answers" json:"answers"`
	UserID     int64                           `gorm:"column:user_id;not null;index" json:"user_id"`
	Score      int                             `gorm:"column:score;not null;default:0;index" json:"score"`
	Audit
}

func (HoroscopeQuizMapUser) TableName() string { return "horoscope_quiz_map_users" }

type HoroscopeQuizClaimGift struct {
	ID       int64          `gorm:"column:quiz_claim_gift_id;primaryKey;autoIncrement" json:"quiz_claim_gift_id"`
	Name     string         `gorm:"column:name;not null" json:"name"`
	Address  string         `gorm:"column:address;not null" json:"address"`
	MobileNo string         `gorm:"column:mobileno;not null" json:"mobileno"`
	Pincode  string         `gorm:"column:pincode;not null" json:"pincode"`
	GiftID   int64          `gorm:"column:gift_id;not null;index" json:"gift_id"`
	Map      datatypes.JSON `gorm:"column:map" json:"map"`
	Audit
}

func (HoroscopeQuizClaimGift) TableName() string { return "horoscope_quiz_claim_gifts" }
