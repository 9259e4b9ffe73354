package controller

import (
	"arch_quiz_backend/internal/service"
	"arch_quiz_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LectureMaterialController struct {
	MaterialService *service.LectureMaterialService
}

func NewLectureMaterialController(materialService *service.LectureMaterialService) *LectureMaterialController {
	return &LectureMaterialController{MaterialService: materialService}
}

// Upload godoc
// @Summary Upload lecture material
// @Description Stores a course file under the given week (1 to 15)
// @Tags materials
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   week formData int true "course week"
// @Param   file formData file true "material file"
// @Success 201 {object} util.Response{data=model.LectureMaterial} "stored"
// @Failure 400 {object} util.Response "invalid week or missing file"
// @Router /api/admin/materials [post]
func (c *LectureMaterialController) Upload(ctx *gin.Context) {
	week, err := strconv.Atoi(ctx.PostForm("week"))
	if err != nil {
		util.BadRequest(ctx, "week is required")
		return
	}

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

	contentType := fileHeader.Header.Get("Content-Type")
	m, err := c.MaterialService.Upload(ctx.Request.Context(), week, fileHeader.Filename, f, fileHeader.Size, contentType)
	if err != nil {
		if errors.Is(err, util.ErrInvalidWeek) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, m)
}

// ListByWeek godoc
// @Summary List lecture material for a week
// @Tags materials
// @Produce  json
// @Security ApiKeyAuth
// @Param   week path int true "course week"
// @Success 200 {object} util.Response{data=object} "materials"
// @Failure 400 {object} util.Response "invalid week"
// @Router /api/materials/{week} [get]
func (c *LectureMaterialController) ListByWeek(ctx *gin.Context) {
	week, err := strconv.Atoi(ctx.Param("week"))
	if err != nil {
		util.BadRequest(ctx, "invalid week")
		return
	}

	materials, err := c.MaterialService.ListByWeek(week)
	if err != nil {
		if errors.Is(err, util.ErrInvalidWeek) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"week": week, "materials": materials})
}

// Delete godoc
// @Summary Delete lecture material
// @Tags materials
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "material id"
// @Success 200 {object} util.Response "deleted"
// @Failure 404 {object} util.Response "not found"
// @Router /api/admin/materials/{id} [delete]
func (c *LectureMaterialController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := c.MaterialService.Delete(ctx.Request.Context(), id); err != nil {
		util.NotFound(ctx, "material not found")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
