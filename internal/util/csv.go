package util

import (
	"bytes"
	"strings"
)

// QuoteCSVField 每个字段都加双引号，内部双引号转义为两个
func QuoteCSVField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// WriteCSVRow 写入一行，所有字段强制加引号
func WriteCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(QuoteCSVField(f))
	}
	buf.WriteByte('\n')
}
