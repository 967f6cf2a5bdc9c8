package request

import (
	"strconv"
	"strings"
)

// Offsets into the service's global category namespace.
const (
	categoryOffset = 9000000
	themeOffset    = 4000000
	geoOffset      = 11000000
)

// AssembleQuery merges the free text with host, site and domain filters and
// the category, theme and geo clauses into one query string.
func AssembleQuery(r SearchRequest) string {
	var b strings.Builder
	b.WriteString(r.Query)

	appendClause := func(clause string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(clause)
	}

	if r.Host != "" {
		appendClause(`host:"` + r.Host + `"`)
	}
	if r.Site != "" {
		appendClause(`site:"` + r.Site + `"`)
	}
	if r.Domain != "" {
		appendClause("domain:" + r.Domain)
	}

	for _, c := range []struct {
		code   int
		offset int
	}{
		{r.Category, categoryOffset},
		{r.Theme, themeOffset},
		{r.Geo, geoOffset},
	} {
		if c.code != 0 {
			appendClause("cat:" + strconv.Itoa(c.code+c.offset))
		}
	}

	return b.String()
}
