package controller

import (
	"proctor_backend/internal/service"
	"proctor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// InvigilatorController 监考人：查看所监考的作答、视线记录，标记作弊
type InvigilatorController struct {
	AttemptService *service.AttemptService
}

func NewInvigilatorController(attemptService *service.AttemptService) *InvigilatorController {
	return &InvigilatorController{AttemptService: attemptService}
}

// ListAttempts godoc
// @Summary 我监考的作答
// @Tags 监考人
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AttemptView} "成功"
// @Router /api/invigilator/attempts [get]
func (c *InvigilatorController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	attempts, err := c.AttemptService.SupervisedAttempts(ctx.Request.Context(), user.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GazeLog godoc
// @Summary 视线记录
// @Description 按时间排序
// @Tags 监考人
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   testTakerId path int true "考生ID"
// @Success 200 {object} util.Response{data=[]model.GazeData} "成功"
// @Failure 404 {object} util.Response "attempt not found"
// @Router /api/invigilator/tests/{testId}/attempts/{testTakerId}/gaze [get]
func (c *InvigilatorController) GazeLog(ctx *gin.Context) {
	testID, ok1 := util.ParamUint(ctx, "testId")
	takerID, ok2 := util.ParamUint(ctx, "testTakerId")
	if !ok1 || !ok2 {
		util.BadRequest(ctx, "invalid path parameter")
		return
	}
	user := util.GetUserFromContext(ctx)
	points, err := c.AttemptService.GazeLog(ctx.Request.Context(), user.ID, testID, takerID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, points)
}

// FlagCheating godoc
// @Summary 标记作弊
// @Tags 监考人
// @Accept  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   testTakerId path int true "考生ID"
// @Param   body body service.CheatingReq true "是否作弊"
// @Success 204 "成功"
// @Failure 404 {object} util.Response "attempt not found"
// @Router /api/invigilator/tests/{testId}/attempts/{testTakerId}/cheating [post]
func (c *InvigilatorController) FlagCheating(ctx *gin.Context) {
	testID, ok1 := util.ParamUint(ctx, "testId")
	takerID, ok2 := util.ParamUint(ctx, "testTakerId")
	if !ok1 || !ok2 {
		util.BadRequest(ctx, "invalid path parameter")
		return
	}
	var req service.CheatingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if err := c.AttemptService.FlagCheating(ctx.Request.Context(), user.ID, testID, takerID, *req.CaughtCheating); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
