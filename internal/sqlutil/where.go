package sqlutil

import (
	"fmt"
	"strings"
)

// Where collects AND-ed conditions and their arguments.
type Where struct {
	conds []string
	args  []any
}

// Cond adds a condition that takes no argument.
func (w *Where) Cond(expr string) *Where {
	w.conds = append(w.conds, expr)
	return w
}

// Arg adds a condition bound to one argument. format must contain a single %d
// verb, which is replaced by the argument's placeholder position.
func (w *Where) Arg(format string, value any) *Where {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains returns a LIKE pattern that matches s anywhere. Wildcards in s
// match literally.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (w *Where) Empty() bool {
	return len(w.conds) == 0
}

// SQL returns " WHERE a AND b", or "" when no condition was added.
func (w *Where) SQL() string {
	if w.Empty() {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *Where) Args() []any {
	return w.args
}
