package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/pkg/errors"
)

func TestRequestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   errors.Code
		wantStatus int
	}{
		{"锁定", repository.ErrRequestLocked, errors.CodeRequestLocked, http.StatusForbidden},
		{"包装后的锁定", fmt.Errorf("删除班次申请失败: %w", repository.ErrRequestLocked), errors.CodeRequestLocked, http.StatusForbidden},
		{"不存在", repository.ErrRequestNotFound, errors.CodeNotFound, http.StatusNotFound},
		{"其他数据库错误", fmt.Errorf("connection refused"), errors.CodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := requestWriteError(tt.err, "提交班次申请失败")
			if appErr.Code != tt.wantCode {
				t.Errorf("错误码 = %s, want %s", appErr.Code, tt.wantCode)
			}
			if appErr.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTP状态码 = %d, want %d", appErr.HTTPStatus, tt.wantStatus)
			}
		})
	}
}
