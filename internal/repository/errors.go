package repository

import (
	"errors"
	"fmt"
	"quiz_assessment_backend/internal/util"

	"gorm.io/gorm"
)

// wrapErr 记录不存在映射为 ErrNotFound，其余数据库错误统一包装为 ErrStorage
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return fmt.Errorf("%w: %v", util.ErrStorage, err)
}
