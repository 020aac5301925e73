package quizzes

import (
	"context"
	"testing"

	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/dbtest"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/astrosocial-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db := dbtest.Open(t)
	svc, err := NewService(ServiceParams{
		Quizzes:  resource.NewRepository[models.HoroscopeQuiz](db, QuizDescriptor),
		Attempts: resource.NewRepository[models.HoroscopeQuizMapUser](db, AttemptDescriptor),
		Claims:   resource.NewRepository[models.HoroscopeQuizClaimGift](db, ClaimDescriptor),
	})
	require.NoError(t, err)
	return svc
}

func options(correct string) OptionsInput {
	flag := func(letter string) *bool {
		v := letter == correct
		return &v
	}
	return OptionsInput{
		A: OptionInput{Text: "Aries", Ans: flag("A")},
		B: OptionInput{Text: "Taurus", Ans: flag("B")},
		C: OptionInput{Text: "Gemini", Ans: flag("C")},
		D: OptionInput{Text: "Cancer", Ans: flag("D")},
	}
}

func seedQuiz(t *testing.T, svc *Service, correct string) *models.HoroscopeQuiz {
	t.Helper()
	req := CreateQuizRequest{Time: 2, QuestionText: "Which sign starts the zodiac?", Answer: options(correct)}
	quiz, err := svc.Quizzes.Create(context.Background(), nil, req.ToModel(0))
	require.NoError(t, err)
	return quiz
}

func TestScore(t *testing.T) {
	key := options("A").toModel()
	assert.Equal(t, 1, Score(key, options("A").toModel()))
	assert.Equal(t, 0, Score(key, options("C").toModel()))
}

func TestSubmitGradesAgainstKey(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	quiz := seedQuiz(t, svc, "A")

	right, err := svc.Submit(ctx, 7, SubmitRequest{QuestionID: quiz.ID, Answers: options("A")})
	require.NoError(t, err)
	assert.Equal(t, 1, right.Score)
	assert.Equal(t, int64(7), right.UserID)
	assert.True(t, right.Answers.Data().A.Correct)

	wrong, err := svc.Submit(ctx, 8, SubmitRequest{QuestionID: quiz.ID, Answers: options("B")})
	require.NoError(t, err)
	assert.Equal(t, 0, wrong.Score)
}

func TestSubmitUnknownOrRetiredQuiz(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 7, SubmitRequest{QuestionID: 99, Answers: options("A")})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	quiz := seedQuiz(t, svc, "A")
	require.NoError(t, svc.Quizzes.Delete(ctx, nil, quiz.ID))

	_, err = svc.Submit(ctx, 7, SubmitRequest{QuestionID: quiz.ID, Answers: options("A")})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateAttemptRegrades(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	quiz := seedQuiz(t, svc, "D")

	attempt, err := svc.Submit(ctx, 7, SubmitRequest{QuestionID: quiz.ID, Answers: options("A")})
	require.NoError(t, err)
	require.Equal(t, 0, attempt.Score)

	fixed := options("D")
	updated, err := svc.UpdateAttempt(ctx, nil, attempt.ID, UpdateAttemptRequest{Answers: &fixed})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Score)

	_, err = svc.UpdateAttempt(ctx, nil, attempt.ID, UpdateAttemptRequest{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestHighScoresOrdersByScoreAndSkipsInactive(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	quiz := seedQuiz(t, svc, "B")

	low, err := svc.Submit(ctx, 1, SubmitRequest{QuestionID: quiz.ID, Answers: options("A")})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, 2, SubmitRequest{QuestionID: quiz.ID, Answers: options("B")})
	require.NoError(t, err)
	hidden, err := svc.Submit(ctx, 3, SubmitRequest{QuestionID: quiz.ID, Answers: options("B")})
	require.NoError(t, err)
	require.NoError(t, svc.Attempts.Delete(ctx, nil, hidden.ID))

	page, err := svc.HighScores(ctx, resource.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Items[0].UserID)
	assert.Equal(t, low.ID, page.Items[1].ID)
}

func TestClaimRequestToModel(t *testing.T) {
	claim := CreateClaimRequest{
		Name:     " Asha ",
		Address:  "12 MG Road",
		MobileNo: "9876543210",
		Pincode:  "560001",
		GiftID:   3,
		Map:      []byte(`{"lat":12.9}`),
	}.ToModel(0)

	assert.Equal(t, "Asha", claim.Name)
	assert.JSONEq(t, `{"lat":12.9}`, string(claim.Map))
}
