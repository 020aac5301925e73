package quizzes

import (
	"context"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
	"github.com/angelmondragon/astrosocial-backend/pkg/pagination"
	"gorm.io/datatypes"
)

// pointsPerQuestion is awarded when the selected flags match the key exactly.
const pointsPerQuestion = 1

// ServiceParams bundles the stores required to build a quiz service.
type ServiceParams struct {
	Quizzes  resource.Store[models.HoroscopeQuiz]
	Attempts resource.Store[models.HoroscopeQuizMapUser]
	Claims   resource.Store[models.HoroscopeQuizClaimGift]
	Logger   *logger.Logger
}

// Service owns quiz questions, scored attempts and gift claims.
type Service struct {
	Quizzes  *resource.Service[models.HoroscopeQuiz]
	Attempts *resource.Service[models.HoroscopeQuizMapUser]
	Claims   *resource.Service[models.HoroscopeQuizClaimGift]
	logg     *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	quizzes, err := resource.NewService(params.Quizzes, QuizDescriptor)
	if err != nil {
		return nil, err
	}
	attempts, err := resource.NewService(params.Attempts, AttemptDescriptor)
	if err != nil {
		return nil, err
	}
	claims, err := resource.NewService(params.Claims, ClaimDescriptor)
	if err != nil {
		return nil, err
	}
	return &Service{Quizzes: quizzes, Attempts: attempts, Claims: claims, logg: params.Logger}, nil
}

// Score grades a selection against the answer key.
func Score(key, selected models.QuizOptions) int {
	if key.Flags() == selected.Flags() {
		return pointsPerQuestion
	}
	return 0
}

// Submit records userID's answer to a question and stores its score.
func (s *Service) Submit(ctx context.Context, userID int64, req SubmitRequest) (*models.HoroscopeQuizMapUser, error) {
	quiz, err := s.activeQuiz(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}
	selected := req.Answers.toModel()
	attempt := &models.HoroscopeQuizMapUser{
		QuestionID: quiz.ID,
		Answers:    datatypes.NewJSONType(selected),
		UserID:     userID,
		Score:      Score(quiz.Answer.Data(), selected),
	}
	created, err := s.Attempts.Create(ctx, &userID, attempt)
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"question_id": quiz.ID,
			"score":       created.Score,
		})
		s.logg.Info(ctx, "quizzes.attempt_recorded")
	}
	return created, nil
}

// UpdateAttempt patches an attempt, regrading it when the answers change.
func (s *Service) UpdateAttempt(ctx context.Context, actor *int64, id int64, req UpdateAttemptRequest) (*models.HoroscopeQuizMapUser, error) {
	changes := map[string]any{}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.Answers != nil {
		attempt, err := s.Attempts.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		quiz, err := s.Quizzes.Get(ctx, attempt.QuestionID)
		if err != nil {
			return nil, err
		}
		selected := req.Answers.toModel()
		changes["answers"] = datatypes.NewJSONType(selected)
		changes["score"] = Score(quiz.Answer.Data(), selected)
	}
	if len(changes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "At least one field must be provided for update")
	}
	return s.Attempts.Update(ctx, actor, id, changes)
}

// HighScores lists active attempts, best score first.
func (s *Service) HighScores(ctx context.Context, q resource.ListQuery) (resource.Page[models.HoroscopeQuizMapUser], error) {
	q = q.ActiveOnly()
	q.SortBy = "score"
	q.SortOrder = pagination.SortDesc
	return s.Attempts.List(ctx, q)
}

func (s *Service) activeQuiz(ctx context.Context, id int64) (*models.HoroscopeQuiz, error) {
	quiz, err := s.Quizzes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quiz.Status {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, QuizDescriptor.NotFoundMessage())
	}
	return quiz, nil
}
