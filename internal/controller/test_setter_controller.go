package controller

import (
	"strconv"

	"proctor_backend/internal/service"
	"proctor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TestSetterController 出题人：创建与管理考试、批改作答
type TestSetterController struct {
	TestService *service.TestService
}

func NewTestSetterController(testService *service.TestService) *TestSetterController {
	return &TestSetterController{TestService: testService}
}

// ListTests godoc
// @Summary 获取我创建的考试
// @Description 包含完整题目、正确选项和总分
// @Tags 出题人
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TestView} "成功"
// @Failure 401 {object} util.Response "Unauthorised"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/test_setter/tests [get]
func (c *TestSetterController) ListTests(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	tests, err := c.TestService.ListCreatedTests(ctx.Request.Context(), user.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// CreateTest godoc
// @Summary 创建考试
// @Tags 出题人
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateTestReq true "考试与题目"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "Unauthorised"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/test_setter/create_test [post]
func (c *TestSetterController) CreateTest(ctx *gin.Context) {
	var req service.CreateTestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	test, err := c.TestService.CreateTest(ctx.Request.Context(), user.ID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": test.ID})
}

// AddQuestion godoc
// @Summary 插入题目
// @Description position 为插入后的序号，缺省或越界时追加到末尾
// @Tags 出题人
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   position query int false "插入位置"
// @Param   body body service.QuestionReq true "题目"
// @Success 201 {object} util.Response{data=service.QuestionView} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/test_setter/tests/{testId}/questions [post]
func (c *TestSetterController) AddQuestion(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}
	position := -1
	if raw := ctx.Query("position"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "position must be an integer")
			return
		}
		position = p
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	q, err := c.TestService.AddQuestion(ctx.Request.Context(), user.ID, testID, req, position)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// ReorderQuestions godoc
// @Summary 调整题目顺序
// @Description discriminators 必须恰好列出考试的每道题一次
// @Tags 出题人
// @Accept  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   body body service.ReorderReq true "新的题目顺序"
// @Success 204 "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/test_setter/tests/{testId}/questions/order [put]
func (c *TestSetterController) ReorderQuestions(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}
	var req service.ReorderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if err := c.TestService.ReorderQuestions(ctx.Request.Context(), user.ID, testID, req.Discriminators); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// DeleteTest godoc
// @Summary 删除考试
// @Description 同时删除题目、作答和视线数据
// @Tags 出题人
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Success 204 "成功"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/test_setter/tests/{testId} [delete]
func (c *TestSetterController) DeleteTest(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}
	user := util.GetUserFromContext(ctx)
	if err := c.TestService.DeleteTest(ctx.Request.Context(), user.ID, testID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ListAttempts godoc
// @Summary 获取考试的全部作答
// @Description marksObtained 在所有题目批改完成前为 null
// @Tags 出题人
// @Produce  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Success 200 {object} util.Response{data=[]service.AttemptView} "成功"
// @Failure 404 {object} util.Response "test not found"
// @Router /api/test_setter/tests/{testId}/attempts [get]
func (c *TestSetterController) ListAttempts(ctx *gin.Context) {
	testID, ok := util.ParamUint(ctx, "testId")
	if !ok {
		util.BadRequest(ctx, "invalid test id")
		return
	}
	user := util.GetUserFromContext(ctx)
	attempts, err := c.TestService.ListAttempts(ctx.Request.Context(), user.ID, testID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GradeAnswer godoc
// @Summary 批改答案
// @Tags 出题人
// @Accept  json
// @Security ApiKeyAuth
// @Param   testId path int true "考试ID"
// @Param   testTakerId path int true "考生ID"
// @Param   questionDiscriminator path int true "题目标识"
// @Param   body body service.MarksReq true "得分"
// @Success 204 "成功"
// @Failure 400 {object} util.Response "marks must be between zero and the question's max marks"
// @Failure 404 {object} util.Response "未找到"
// @Router /api/test_setter/tests/{testId}/attempts/{testTakerId}/answers/{questionDiscriminator}/marks [put]
func (c *TestSetterController) GradeAnswer(ctx *gin.Context) {
	testID, ok1 := util.ParamUint(ctx, "testId")
	takerID, ok2 := util.ParamUint(ctx, "testTakerId")
	questionDisc, ok3 := util.ParamUint(ctx, "questionDiscriminator")
	if !ok1 || !ok2 || !ok3 {
		util.BadRequest(ctx, "invalid path parameter")
		return
	}
	var req service.MarksReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if err := c.TestService.GradeAnswer(ctx.Request.Context(), user.ID, testID, takerID, questionDisc, *req.Marks); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
