package quizzes

import (
	"encoding/json"
	"strings"

	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"gorm.io/datatypes"
)

type OptionInput struct {
	Text string `json:"text" validate:"required,max=200"`
	Ans  *bool  `json:"ans" validate:"required"`
}

// OptionsInput carries the four fixed choices A to D.
type OptionsInput struct {
	A OptionInput `json:"A" validate:"required"`
	B OptionInput `json:"B" validate:"required"`
	C OptionInput `json:"C" validate:"required"`
	D OptionInput `json:"D" validate:"required"`
}

func (o OptionsInput) toModel() models.QuizOptions {
	return models.QuizOptions{
		A: o.A.toModel(),
		B: o.B.toModel(),
		C: o.C.toModel(),
		D: o.D.toModel(),
	}
}

func (o OptionInput) toModel() models.QuizOption {
	return models.QuizOption{Text: strings.TrimSpace(o.Text), Correct: o.Ans != nil && *o.Ans}
}

type CreateQuizRequest struct {
	Time         int          `json:"time" validate:"required,gte=1"`
	QuestionText string       `json:"question_text" validate:"required,max=1000"`
	Answer       OptionsInput `json:"answer" validate:"required"`
}

func (r CreateQuizRequest) ToModel(_ int64) *models.HoroscopeQuiz {
	return &models.HoroscopeQuiz{
		TimeMinutes:  r.Time,
		QuestionText: strings.TrimSpace(r.QuestionText),
		Answer:       datatypes.NewJSONType(r.Answer.toModel()),
	}
}

type UpdateQuizRequest struct {
	Time         *int          `json:"time,omitempty" validate:"omitempty,gte=1"`
	QuestionText *string       `json:"question_text,omitempty" validate:"omitempty,max=1000"`
	Answer       *OptionsInput `json:"answer,omitempty"`
	Status       *bool         `json:"status,omitempty"`
}

func (r UpdateQuizRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Time != nil {
		changes["time_minutes"] = *r.Time
	}
	if r.QuestionText != nil {
		changes["question_text"] = strings.TrimSpace(*r.QuestionText)
	}
	if r.Answer != nil {
		changes["answer"] = datatypes.NewJSONType(r.Answer.toModel())
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	return changes
}

// SubmitRequest is one user's answer to one question.
type SubmitRequest struct {
	QuestionID int64        `json:"question_id" validate:"required,gt=0"`
	Answers    OptionsInput `json:"answers" validate:"required"`
}

type UpdateAttemptRequest struct {
	Answers *OptionsInput `json:"answers,omitempty"`
	Status  *bool         `json:"status,omitempty"`
}

type CreateClaimRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Address  string          `json:"address" validate:"required,max=500"`
	MobileNo string          `json:"mobileno" validate:"required,mobile"`
	Pincode  string          `json:"pincode" validate:"required,numeric,len=6"`
	GiftID   int64           `json:"gift_id" validate:"required,gt=0"`
	Map      json.RawMessage `json:"map,omitempty"`
}

func (r CreateClaimRequest) ToModel(_ int64) *models.HoroscopeQuizClaimGift {
	claim := &models.HoroscopeQuizClaimGift{
		Name:     strings.TrimSpace(r.Name),
		Address:  strings.TrimSpace(r.Address),
		MobileNo: strings.TrimSpace(r.MobileNo),
		Pincode:  strings.TrimSpace(r.Pincode),
		GiftID:   r.GiftID,
	}
	if len(r.Map) > 0 {
		claim.Map = datatypes.JSON(r.Map)
	}
	return claim
}

type UpdateClaimRequest struct {
	Name     *string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Address  *string         `json:"address,omitempty" validate:"omitempty,max=500"`
	MobileNo *string         `json:"mobileno,omitempty" validate:"omitempty,mobile"`
	Pincode  *string         `json:"pincode,omitempty" validate:"omitempty,numeric,len=6"`
	GiftID   *int64          `json:"gift_id,omitempty" validate:"omitempty,gt=0"`
	Map      json.RawMessage `json:"map,omitempty"`
	Status   *bool           `json:"status,omitempty"`
}

func (r UpdateClaimRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Name != nil {
		changes["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Address != nil {
		changes["address"] = strings.TrimSpace(*r.Address)
	}
	if r.MobileNo != nil {
		changes["mobileno"] = strings.TrimSpace(*r.MobileNo)
	}
	if r.Pincode != nil {
		changes["pincode"] = strings.TrimSpace(*r.Pincode)
	}
	if r.GiftID != nil {
		changes["gift_id"] = *r.GiftID
	}
	if len(r.Map) > 0 {
		changes["map"] = datatypes.JSON(r.Map)
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	return changes
}
