package controller

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/service"
	"arch_quiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// SessionQuestionView is a question as shown while solving. The model
// answer and explanation stay hidden until the session is graded.
type SessionQuestionView struct {
	QuestionID  uint                 `json:"questionId"`
	Text        string               `json:"question"`
	Choices     []string             `json:"choices,omitempty"`
	Format      model.QuestionFormat `json:"format"`
	Difficulty  int                  `json:"difficulty"`
	Chapter     string               `json:"chapter"`
	Submitted   string               `json:"submitted,omitempty"`
	Revealed    bool                 `json:"revealed"`
	Correct     bool                 `json:"correct,omitempty"`
	Answer      string               `json:"answer,omitempty"`
	Explanation *model.Explanation   `json:"explanation,omitempty"`
}

type SessionView struct {
	ID        string                `json:"id"`
	Source    string                `json:"source"`
	Graded    bool                  `json:"graded"`
	CreatedAt string                `json:"createdAt"`
	Questions []SessionQuestionView `json:"questions"`
}

func sessionView(s *service.QuizSession) SessionView {
	view := SessionView{
		ID:        s.ID,
		Source:    s.Source,
		Graded:    s.Graded,
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
		Questions: make([]SessionQuestionView, 0, len(s.Questions)),
	}
	for _, sq := range s.Questions {
		q := sq.Question
		v := SessionQuestionView{
			QuestionID: q.ID,
			Text:       q.Text,
			Format:     q.Format,
			Difficulty: q.Difficulty,
			Chapter:    q.Chapter,
			Submitted:  sq.Submitted,
			Revealed:   sq.Revealed,
		}
		if q.IsObjective() {
			v.Choices = q.Choices()
		}
		if sq.Revealed {
			v.Correct = sq.Correct
			v.Answer = q.Answer
			if !q.Explanation.IsEmpty() {
				e := q.Explanation
				v.Explanation = &e
			}
		}
		view.Questions = append(view.Questions, v)
	}
	return view
}

// StartQuiz godoc
// @Summary Start a quiz
// @Description Samples questions from the chosen source and opens a fresh session
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.StartQuizRequest true "source and question counts"
// @Success 200 {object} util.Response{data=SessionView} "session"
// @Failure 400 {object} util.Response "invalid payload or empty bank"
// @Failure 401 {object} util.Response "unauthorized"
// @Router /api/quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.QuizService.StartQuiz(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrEmptyQuestionBank) || errors.Is(err, util.ErrSeedFileMissing) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, sessionView(session))
}

// GetSession godoc
// @Summary Active quiz session
// @Description Returns the caller's current session, if one exists
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=SessionView} "session"
// @Failure 404 {object} util.Response "no active session"
// @Router /api/quiz/session [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.QuizService.GetSession(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, sessionView(session))
}

// SubmitRequest maps question ids to the submitted answers. Objective
// answers are 1-based choice indexes, subjective answers free text.
type SubmitRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Grades the active session, records every attempt and reveals the verdicts
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitRequest true "answers by question id"
// @Success 200 {object} util.Response{data=service.QuizResult} "graded result"
// @Failure 400 {object} util.Response "already submitted"
// @Failure 404 {object} util.Response "no active session"
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), claims.UserID, claims.Username, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrSessionSubmitted):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Restart godoc
// @Summary Discard the active session
// @Description Drops the caller's session so a new quiz can start clean
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "discarded"
// @Router /api/quiz/restart [post]
func (c *QuizController) Restart(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuizService.Restart(ctx.Request.Context(), claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"restarted": true})
}

type FeedbackRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Comment    string `json:"comment" binding:"required"`
}

// SubmitFeedback godoc
// @Summary File feedback on a question
// @Description Stores a free-text comment tied to a question
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body FeedbackRequest true "question id and comment"
// @Success 201 {object} util.Response "stored"
// @Failure 404 {object} util.Response "question not found"
// @Router /api/quiz/feedback [post]
func (c *QuizController) SubmitFeedback(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.QuizService.SubmitFeedback(claims.UserID, req.QuestionID, req.Comment); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"recorded": true})
}
