package controller

import (
	"encoding/json"
	"strconv"

	"proctor_backend/internal/model"
	"proctor_backend/internal/service"
	"proctor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TestTakerController 考生：查看试卷、作答、上传视线数据
type TestTakerController struct {
	AttemptService *service.AttemptService
}

func NewTestTakerController(attemptService *service.AttemptService) *TestTakerController {
	return &TestTakerController{AttemptService: attemptService}
}

// GetPaper godoc
// @Summary 查看试卷
// @Description 不包含正确选项；考试开始前不返回题目
// @Tags 考生
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Success 200 {object} util.Response{data=service.TestView} "成功"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/test_taker/tests/{testId} [get]
func (c *TestTakerController) GetPaper(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}
	paper, err := c.AttemptService.PaperView(ctx.Request.Context(), testID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, paper)
}

// StartAttempt godoc
// @Summary 开始作答
// @Description 上传考试环境照片和屏幕位置，每场考试只能开始一次
// @Tags 考生
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   invigilatorId formData int false "监考人ID"
// @Param   screenPosition formData string true "屏幕四角坐标 JSON"
// @Param   environmentImage formData file true "考试环境照片"
// @Success 201 {object} util.Response{data=service.AttemptView} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "attempt already started for this test"
// @Router /api/test_taker/tests/{testId}/attempt [post]
func (c *TestTakerController) StartAttempt(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}

	var req service.StartAttemptReq
	if raw := ctx.PostForm("invigilatorId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "invalid invigilator id")
			return
		}
		invigilatorID := uint(id)
		req.InvigilatorID = &invigilatorID
	}
	var position model.Rectangle
	if err := json.Unmarshal([]byte(ctx.PostForm("screenPosition")), &position); err != nil {
		util.BadRequest(ctx, "invalid screen position")
		return
	}
	req.ScreenPosition = position

	image, closer, err := formUpload(ctx, "environmentImage", util.MaxEnvironmentImageBytes, util.MimeImage)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	defer closer.Close()

	user := util.GetUserFromContext(ctx)
	attempt, err := c.AttemptService.StartAttempt(ctx.Request.Context(), user.ID, testID, req, image)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// GetAttempt godoc
// @Summary 查看我的作答
// @Tags 考生
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Success 200 {object} util.Response{data=service.AttemptView} "成功"
// @Failure 404 {object} util.Response "attempt not found"
// @Router /api/test_taker/tests/{testId}/attempt [get]
func (c *TestTakerController) GetAttempt(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}
	user := util.GetUserFromContext(ctx)
	attempt, err := c.AttemptService.GetAttempt(ctx.Request.Context(), user.ID, testID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// SaveAnswer godoc
// @Summary 保存答案
// @Description 答案类型必须与题目类型一致；修改答案会清除已批改的分数
// @Tags 考生
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   questionDiscriminator path int true "题目标识"
// @Param   body body service.AnswerReq true "答案"
// @Success 200 {object} util.Response{data=service.AnswerView} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "attempt is finished"
// @Router /api/test_taker/tests/{testId}/attempt/answers/{questionDiscriminator} [put]
func (c *TestTakerController) SaveAnswer(ctx *gin.Context) {
	testID, ok1 := util.ParamUint(ctx, "testId")
	questionDisc, ok2 := util.ParamUint(ctx, "questionDiscriminator")
	if !ok1 || !ok2 {
		util.BadRequest(ctx, "invalid path parameter")
		return
	}
	var req service.AnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	answer, err := c.AttemptService.SaveAnswer(ctx.Request.Context(), user.ID, testID, questionDisc, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// UploadAttachment godoc
// @Summary 上传附件答案
// @Tags 考生
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   questionDiscriminator path int true "题目标识"
// @Param   file formData file true "附件"
// @Success 200 {object} util.Response{data=service.AnswerView} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 413 {object} util.Response "file is too large"
// @Router /api/test_taker/tests/{testId}/attempt/answers/{questionDiscriminator}/attachment [post]
func (c *TestTakerController) UploadAttachment(ctx *gin.Context) {
	testID, ok1 := util.ParamUint(ctx, "testId")
	questionDisc, ok2 := util.ParamUint(ctx, "questionDiscriminator")
	if !ok1 || !ok2 {
		util.BadRequest(ctx, "invalid path parameter")
		return
	}

	file, closer, err := formUpload(ctx, "file", util.MaxAttachmentBytes)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	defer closer.Close()

	user := util.GetUserFromContext(ctx)
	answer, err := c.AttemptService.UploadAttachment(ctx.Request.Context(), user.ID, testID, questionDisc, file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// RecordGaze godoc
// @Summary 上传视线数据
// @Tags 考生
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   body body service.GazeReq true "视线坐标"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 409 {object} util.Response "attempt is finished"
// @Router /api/test_taker/tests/{testId}/attempt/gaze [post]
func (c *TestTakerController) RecordGaze(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}
	var req service.GazeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	n, err := c.AttemptService.RecordGaze(ctx.Request.Context(), user.ID, testID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"recorded": n})
}

// FinishAttempt godoc
// @Summary 交卷
// @Tags 考生
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Success 204 "成功"
// @Failure 409 {object} util.Response "attempt is finished"
// @Router /api/test_taker/tests/{testId}/attempt/finish [post]
func (c *TestTakerController) FinishAttempt(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}
	user := util.GetUserFromContext(ctx)
	if err := c.AttemptService.FinishAttempt(ctx.Request.Context(), user.ID, testID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
