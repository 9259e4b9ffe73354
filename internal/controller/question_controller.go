package controller

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/service"
	"arch_quiz_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QuestionController exposes the admin question bank: CRUD, CSV
// import/export and LLM generation.
type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

func parseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ListQuestions godoc
// @Summary List questions
// @Description Pages through the bank, optionally filtered by source
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   source query string false "source label filter"
// @Param   page query int false "page, 1-based"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=object} "questions and total"
// @Router /api/admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	source := ctx.Query("source")

	questions, total, err := c.QuestionService.ListQuestions(source, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"questions": questions,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// ListSources godoc
// @Summary Question counts per source
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "source counts"
// @Router /api/admin/questions/sources [get]
func (c *QuestionController) ListSources(ctx *gin.Context) {
	sources, err := c.QuestionService.ListSources()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"sources": sources})
}

// GetQuestion godoc
// @Summary Fetch one question
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Success 200 {object} util.Response{data=model.Question} "question"
// @Failure 404 {object} util.Response "not found"
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	q, err := c.QuestionService.GetQuestion(id)
	if err != nil {
		util.NotFound(ctx, util.ErrQuestionNotFound.Error())
		return
	}
	util.Success(ctx, q)
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestionRequest true "question payload"
// @Success 201 {object} util.Response{data=model.Question} "created"
// @Failure 400 {object} util.Response "invalid question"
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.CreateQuestion(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Param   body body service.QuestionRequest true "question payload"
// @Success 200 {object} util.Response{data=model.Question} "updated"
// @Failure 404 {object} util.Response "not found"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.UpdateQuestion(id, req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Success 200 {object} util.Response "deleted"
// @Failure 404 {object} util.Response "not found"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := c.QuestionService.DeleteQuestion(id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// ImportCSV godoc
// @Summary Import a question CSV
// @Description Uploads a CSV in the seed layout and stores every row
// @Tags questions
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "question CSV"
// @Success 200 {object} util.Response{data=object} "row count"
// @Failure 400 {object} util.Response "missing or malformed file"
// @Router /api/admin/questions/import [post]
func (c *QuestionController) ImportCSV(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	imported, err := c.QuestionService.ImportCSV(f)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"imported": imported})
}

// ExportCSV godoc
// @Summary Export the question bank
// @Description Writes every stored question to a CSV and serves it
// @Tags questions
// @Produce  text/csv
// @Security ApiKeyAuth
// @Success 200 {file} file "CSV download"
// @Router /api/admin/questions/export [get]
func (c *QuestionController) ExportCSV(ctx *gin.Context) {
	path, err := c.QuestionService.Export()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.FileAttachment(path, "questions_export.csv")
}

type GenerateRequest struct {
	Format model.QuestionFormat `json:"format" binding:"required"`
}

// Generate godoc
// @Summary Generate a question
// @Description Asks the model for a new question of the requested format
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateRequest true "question format"
// @Success 201 {object} util.Response{data=model.Question} "generated"
// @Failure 502 {object} util.Response "generation failed"
// @Router /api/admin/questions/generate [post]
func (c *QuestionController) Generate(ctx *gin.Context) {
	var req GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Format != model.Objective && req.Format != model.Subjective {
		util.BadRequest(ctx, "unknown format")
		return
	}

	q, err := c.QuestionService.Generate(req.Format)
	if err != nil {
		util.Error(ctx, 502, err.Error())
		return
	}
	util.Created(ctx, q)
}

type GenerateLectureRequest struct {
	LectureText string `json:"lectureText" binding:"required"`
}

// GenerateFromLecture godoc
// @Summary Generate a question from lecture text
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateLectureRequest true "lecture excerpt"
// @Success 201 {object} util.Response{data=model.Question} "generated"
// @Failure 502 {object} util.Response "generation failed"
// @Router /api/admin/questions/generate/lecture [post]
func (c *QuestionController) GenerateFromLecture(ctx *gin.Context) {
	var req GenerateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.GenerateFromLecture(req.LectureText)
	if err != nil {
		util.Error(ctx, 502, err.Error())
		return
	}
	util.Created(ctx, q)
}

type GenerateKeywordRequest struct {
	Keyword    string `json:"keyword" binding:"required"`
	Difficulty string `json:"difficulty"`
}

// GenerateByKeyword godoc
// @Summary Generate a question around a keyword
// @Description Generated questions are also appended to the generated-question CSV bank
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateKeywordRequest true "keyword and difficulty"
// @Success 201 {object} util.Response{data=model.Question} "generated"
// @Failure 502 {object} util.Response "generation failed"
// @Router /api/admin/questions/generate/keyword [post]
func (c *QuestionController) GenerateByKeyword(ctx *gin.Context) {
	var req GenerateKeywordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "중"
	}

	q, err := c.QuestionService.GenerateByKeyword(req.Keyword, req.Difficulty)
	if err != nil {
		util.Error(ctx, 502, err.Error())
		return
	}
	util.Created(ctx, q)
}

// RegenerateExplanation godoc
// @Summary Regenerate a question's explanation
// @Description Replaces the explanation with a long-form text plus summary points
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Success 200 {object} util.Response{data=model.Question} "updated"
// @Failure 404 {object} util.Response "not found"
// @Failure 502 {object} util.Response "generation failed"
// @Router /api/admin/questions/{id}/explanation [post]
func (c *QuestionController) RegenerateExplanation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	q, err := c.QuestionService.RegenerateExplanation(id)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.Error(ctx, 502, err.Error())
		}
		return
	}
	util.Success(ctx, q)
}
