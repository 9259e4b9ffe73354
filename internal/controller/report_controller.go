package controller

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/service"
	"arch_quiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ReportController serves accuracy projections over the attempt log.
// Students see their own numbers; admins may query any user or the
// whole cohort.
type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// reportUserID resolves which user a report is about. Admins may pass
// ?user_id=N (0 means everyone); students always get themselves.
func reportUserID(ctx *gin.Context) uint {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return 0
	}
	if claims.Role == model.Admin {
		if raw := ctx.Query("user_id"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
				return uint(id)
			}
		}
		return 0
	}
	return claims.UserID
}

// AccuracyByChapter godoc
// @Summary Accuracy grouped by chapter
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   user_id query int false "admin only, 0 for all users"
// @Success 200 {object} util.Response{data=object} "accuracy entries"
// @Router /api/reports/chapters [get]
func (c *ReportController) AccuracyByChapter(ctx *gin.Context) {
	entries, err := c.ReportService.AccuracyByChapter(reportUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"entries": entries})
}

// AccuracyByDifficulty godoc
// @Summary Accuracy grouped by difficulty
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   user_id query int false "admin only, 0 for all users"
// @Success 200 {object} util.Response{data=object} "accuracy entries"
// @Router /api/reports/difficulty [get]
func (c *ReportController) AccuracyByDifficulty(ctx *gin.Context) {
	entries, err := c.ReportService.AccuracyByDifficulty(reportUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"entries": entries})
}

// AccuracyByUser godoc
// @Summary Accuracy per student
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "accuracy entries"
// @Router /api/admin/reports/users [get]
func (c *ReportController) AccuracyByUser(ctx *gin.Context) {
	entries, err := c.ReportService.AccuracyByUser()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"entries": entries})
}

// DailyCounts godoc
// @Summary Attempts per solve date
// @Description Daily solving activity for the history chart
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   user_id query int false "admin only, 0 for all users"
// @Success 200 {object} util.Response{data=object} "daily entries"
// @Router /api/reports/daily [get]
func (c *ReportController) DailyCounts(ctx *gin.Context) {
	entries, err := c.ReportService.DailyCounts(reportUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"entries": entries})
}

// ListStudents godoc
// @Summary Student accounts
// @Description Picker data for per-user reports
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "student entries"
// @Router /api/admin/reports/students [get]
func (c *ReportController) ListStudents(ctx *gin.Context) {
	entries, err := c.ReportService.Students()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"students": entries})
}

// Overview godoc
// @Summary Personal dashboard
// @Description Totals, accuracy, most-missed chapters and recent attempts
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserOverview} "overview"
// @Router /api/reports/overview [get]
func (c *ReportController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	userID := claims.UserID
	if claims.Role == model.Admin {
		if raw := ctx.Query("user_id"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
				userID = uint(id)
			}
		}
	}

	overview, err := c.ReportService.Overview(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// ListFeedback godoc
// @Summary Question feedback
// @Description Students see their own feedback; admins see everything
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "feedback rows"
// @Router /api/reports/feedback [get]
func (c *ReportController) ListFeedback(ctx *gin.Context) {
	rows, err := c.ReportService.Feedback(reportUserID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"feedback": rows})
}
