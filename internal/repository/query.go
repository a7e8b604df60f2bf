package repository

import (
	"fmt"
	"strings"
)

// whereBuilder 按顺序拼接 AND 条件，条件中的 ? 替换为 $n 占位符
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (b *whereBuilder) add(cond string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(b.args)), 1))
}

func (b *whereBuilder) String() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// likePattern 转义 LIKE 通配符后包成子串匹配
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
