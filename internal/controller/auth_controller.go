package controller

import (
	"net/http"
	"strconv"

	"proctor_backend/internal/config"
	"proctor_backend/internal/service"
	"proctor_backend/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Cfg         *config.SessionConfig
}

func NewAuthController(authService *service.AuthService, cfg *config.SessionConfig) *AuthController {
	return &AuthController{
		AuthService: authService,
		Cfg:         cfg,
	}
}

// CreateAccount godoc
// @Summary 注册新用户
// @Description 用户名和邮箱必须唯一
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.CreateAccountReq true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 422 {object} util.Response "用户名或邮箱已被占用"
// @Router /api/user/create_account [post]
func (c *AuthController) CreateAccount(ctx *gin.Context) {
	var req service.CreateAccountReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.CreateAccount(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": user.ID})
}

// startSession verifies the credential in the body and registers a session.
func (c *AuthController) startSession(ctx *gin.Context) (*service.Session, bool) {
	var req service.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return nil, false
	}
	remember := false
	if raw := ctx.Query("remember"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "remember must be a boolean")
			return nil, false
		}
		remember = v
	}

	userID, err := c.AuthService.VerifyCredential(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return nil, false
	}
	sess, err := c.AuthService.StartSession(ctx.Request.Context(), userID, remember)
	if err != nil {
		util.HandleError(ctx, err)
		return nil, false
	}
	return sess, true
}

// cookieOptions keeps a plain session cookie for the browser session and a
// persistent one when the user asked to be remembered.
func (c *AuthController) cookieOptions(sess *service.Session) sessions.Options {
	opts := sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if sess.Remember {
		opts.MaxAge = int(c.Cfg.RememberDuration.Seconds())
	}
	return opts
}

// Login godoc
// @Summary 用户登录
// @Description 验证用户名和密码并写入会话 Cookie
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   remember query bool false "记住我"
// @Param   body body service.LoginReq true "用户登录凭据"
// @Success 204 "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "Invalid credential"
// @Router /api/user/authentication/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	sess, ok := c.startSession(ctx)
	if !ok {
		return
	}
	if err := util.SaveSession(ctx, c.cookieOptions(sess), sess.ID, sess.UserID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// Token godoc
// @Summary 获取访问令牌
// @Description 与登录相同，但以 Bearer 令牌返回会话，供非浏览器客户端使用
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   remember query bool false "记住我"
// @Param   body body service.LoginReq true "用户登录凭据"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "Invalid credential"
// @Router /api/user/authentication/token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	sess, ok := c.startSession(ctx)
	if !ok {
		return
	}
	token, err := c.AuthService.IssueToken(sess)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"token": token, "expiresAt": sess.ExpiresAt})
}

// Logout godoc
// @Summary 退出登录
// @Description 注销请求携带的会话并清除 Cookie；会话已过期或不存在时同样返回 204
// @Tags 认证
// @Security ApiKeyAuth
// @Success 204 "成功"
// @Router /api/user/authentication/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var sid string
	if token, ok := util.BearerToken(ctx); ok {
		if parsed, _, err := c.AuthService.ParseToken(token); err == nil {
			sid = parsed
		}
	} else if cookieSID, _, ok := util.SessionCredential(ctx); ok {
		sid = cookieSID
	}
	if sid != "" {
		if err := c.AuthService.Logout(ctx.Request.Context(), sid); err != nil {
			util.HandleError(ctx, err)
			return
		}
	}
	if err := util.ClearSession(ctx); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
