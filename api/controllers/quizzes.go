package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/astrosocial-backend/api/responses"
	"github.com/angelmondragon/astrosocial-backend/api/validators"
	"github.com/angelmondragon/astrosocial-backend/internal/quizzes"
	"github.com/angelmondragon/astrosocial-backend/internal/resource"
	"github.com/angelmondragon/astrosocial-backend/pkg/db/models"
	"github.com/angelmondragon/astrosocial-backend/pkg/logger"
)

// QuizGrader scores quiz attempts.
type QuizGrader interface {
	Submit(ctx context.Context, userID int64, req quizzes.SubmitRequest) (*models.HoroscopeQuizMapUser, error)
	UpdateAttempt(ctx context.Context, actor *int64, id int64, req quizzes.UpdateAttemptRequest) (*models.HoroscopeQuizMapUser, error)
	HighScores(ctx context.Context, q resource.ListQuery) (resource.Page[models.HoroscopeQuizMapUser], error)
}

// SubmitQuizAttempt grades the caller's answer and stores the attempt.
func SubmitQuizAttempt(svc QuizGrader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body quizzes.SubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attempt, err := svc.Submit(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "Quiz answer submitted successfully", attempt)
	}
}

func UpdateQuizAttempt(svc QuizGrader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body quizzes.UpdateAttemptRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attempt, err := svc.UpdateAttempt(r.Context(), &userID, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Quiz attempt updated successfully", attempt)
	}
}

func ListHighScores(svc QuizGrader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := ParseListQuery(r, quizzes.AttemptDescriptor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.HighScores(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, "High scores retrieved successfully", page.Items, page.Meta)
	}
}
