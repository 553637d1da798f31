package controller

import (
	"proctor_backend/internal/model"
	"proctor_backend/internal/service"
	"proctor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户资料与角色
type UserController struct {
	UserService *service.UserService
	AuthService *service.AuthService
}

func NewUserController(userService *service.UserService, authService *service.AuthService) *UserController {
	return &UserController{
		UserService: userService,
		AuthService: authService,
	}
}

// Details godoc
// @Summary 获取当前用户资料
// @Description 返回用户名、姓名、邮箱以及持有的角色
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserDetails} "成功"
// @Failure 401 {object} util.Response "Unauthorised"
// @Router /api/user/details [get]
func (c *UserController) Details(ctx *gin.Context) {
	details, err := c.UserService.Details(ctx.Request.Context(), util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, details)
}

// DeleteAccount godoc
// @Summary 注销账号
// @Description 删除当前用户及其角色、创建的考试和作答记录
// @Tags 用户
// @Security ApiKeyAuth
// @Success 204 "成功"
// @Failure 401 {object} util.Response "Unauthorised"
// @Router /api/user/account [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.UserService.DeleteAccount(ctx.Request.Context(), user.ID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := c.AuthService.Logout(ctx.Request.Context(), util.SessionFromContext(ctx)); err != nil {
		util.HandleError(ctx, err)
		return
	}
	if err := util.ClearSession(ctx); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

func (c *UserController) assumeRole(ctx *gin.Context, role model.UserRole) {
	user := util.GetUserFromContext(ctx)
	if err := c.UserService.AssumeRole(ctx.Request.Context(), user.ID, role); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// AssumeTestSetter godoc
// @Summary 成为出题人
// @Tags 角色
// @Security ApiKeyAuth
// @Success 204 "成功"
// @Failure 400 {object} util.Response "User is already a test setter."
// @Failure 401 {object} util.Response "Unauthorised"
// @Router /api/test_setter/assume_role [post]
func (c *UserController) AssumeTestSetter(ctx *gin.Context) {
	c.assumeRole(ctx, model.TestSetterRole)
}

// AssumeTestTaker godoc
// @Summary 成为考生
// @Tags 角色
// @Security ApiKeyAuth
// @Success 204 "成功"
// @Failure 400 {object} util.Response "User is already a test taker."
// @Failure 401 {object} util.Response "Unauthorised"
// @Router /api/test_taker/assume_role [post]
func (c *UserController) AssumeTestTaker(ctx *gin.Context) {
	c.assumeRole(ctx, model.TestTakerRole)
}

// AssumeInvigilator godoc
// @Summary 成为监考人
// @Tags 角色
// @Security ApiKeyAuth
// @Success 204 "成功"
// @Failure 400 {object} util.Response "User is already an invigilator."
// @Failure 401 {object} util.Response "Unauthorised"
// @Router /api/invigilator/assume_role [post]
func (c *UserController) AssumeInvigilator(ctx *gin.Context) {
	c.assumeRole(ctx, model.InvigilatorRole)
}
