package service

import (
	"errors"
	"fmt"
	"quiz_assessment_backend/internal/util"
)

// notFound 为 ErrNotFound 补充资源说明，其他错误原样返回
func notFound(err error, what string, id interface{}) error {
	if errors.Is(err, util.ErrNotFound) {
		return fmt.Errorf("%w: %s %v", util.ErrNotFound, what, id)
	}
	return err
}
