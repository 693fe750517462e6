package util

import (
	"strconv"
)

// ParseOptionalUint 空字符串返回 0；非法值返回错误
func ParseOptionalUint(s string) (uint, error) {
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
