// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/canpai/canpai/internal/middleware"
	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/internal/security"
	"github.com/canpai/canpai/pkg/errors"
	"github.com/canpai/canpai/pkg/logger"
	"github.com/canpai/canpai/pkg/model"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	accounts *repository.AccountRepository
	staff    *repository.StaffRepository
	security *security.Manager
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(accounts *repository.AccountRepository, staff *repository.StaffRepository, sec *security.Manager) *AuthHandler {
	return &AuthHandler{accounts: accounts, staff: staff, security: sec}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string       `json:"token"`
	Staff *model.Staff `json:"staff,omitempty"` // 未绑定员工档案时为空
}

// Login 登录
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, errors.New(errors.CodeInvalidInput, "用户名和密码不能为空"))
		return
	}

	account, err := h.accounts.GetByUsername(r.Context(), req.Username)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询账号失败"))
		return
	}
	if account == nil || !h.security.CheckPassword(req.Password, account.PasswordHash) {
		respondError(w, errors.New(errors.CodeUnauthorized, "用户名或密码错误"))
		return
	}

	claims := &security.Claims{
		AccountID: account.ID,
		Username:  account.Username,
	}

	// 账号可以不绑定员工档案, 此时只能访问与员工无关的接口
	staff, err := h.staff.GetByAccountID(r.Context(), account.ID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询员工档案失败"))
		return
	}
	if staff != nil {
		claims.StaffID = &staff.ID
		claims.StoreID = &staff.StoreID
		claims.IsManager = staff.IsManager
	}

	token, err := h.security.IssueToken(claims)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInternal, "签发令牌失败"))
		return
	}

	logger.Info().Str("username", account.Username).Bool("has_staff", staff != nil).Msg("登录成功")

	respondJSON(w, http.StatusOK, LoginResponse{Token: token, Staff: staff})
}

// Me 获取当前登录员工档案
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, errors.New(errors.CodeUnauthorized, "未登录"))
		return
	}

	if claims.StaffID == nil {
		respondError(w, errors.StaffNotLinked(claims.Username))
		return
	}

	staff, err := h.staff.GetByID(r.Context(), *claims.StaffID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询员工档案失败"))
		return
	}
	if staff == nil {
		respondError(w, errors.StaffNotLinked(claims.Username))
		return
	}

	respondJSON(w, http.StatusOK, staff)
}
