package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// 选项数量约束（每题）
const (
	MinOptionsPerQuestion = 2
	MaxOptionsPerQuestion = 5
)
