package generator

import (
	"strings"

	"github.com/koustreak/ddlgen/internal/errs"
	"github.com/koustreak/ddlgen/internal/sqltoken"
)

// repairFirebird removes the "<dbName>." qualifier the firebird builder puts
// on table references. Only the reference right after CREATE TABLE or
// COMMENT ON COLUMN|TABLE is touched; defaults and literals are left alone.
func repairFirebird(sql, dbName string) (string, error) {
	stmts, err := sqltoken.Identify(sql, sqltoken.Options{Dialect: "generic"})
	if err != nil {
		return "", errs.Wrap(errs.ErrKindRender, "firebird: cannot split generated sql", err)
	}

	prefix := dbName + "."
	var sb strings.Builder
	sb.Grow(len(sql))
	for _, st := range stmts {
		sb.WriteString(stripQualifier(st, prefix))
	}
	return sb.String(), nil
}

func stripQualifier(st sqltoken.Statement, prefix string) string {
	var i int
	switch st.Type {
	case sqltoken.CreateTable:
		i = st.Significant(2)
	case sqltoken.CommentOn:
		i = st.Significant(3)
	default:
		return st.Text
	}
	if i < 0 {
		return st.Text
	}
	off := st.Tokens[i].Pos - st.Start
	if !strings.HasPrefix(st.Text[off:], prefix) {
		return st.Text
	}
	return st.Text[:off] + st.Text[off+len(prefix):]
}
