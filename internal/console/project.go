package console

import (
	"strconv"
	"strings"
)

// Row is the three-column table projection shared by every entity kind.
type Row struct {
	ID      int64
	Primary string
	Details string
	Value   string
}

// RowOf projects any entity into its display row. The fallback order is
// fixed: primary = name, category, "N/A"; details = type, email,
// description, "No details"; value = interest rate, amount, risk profile,
// "N/A". Total over every kind.
func RowOf(e Entity) Row {
	a := e.Attrs()

	primary := "N/A"
	switch {
	case a.Name != "":
		primary = a.Name
	case a.Category != "":
		primary = a.Category
	}

	details := "No details"
	switch {
	case a.Type != "":
		details = a.Type
	case a.Email != "":
		details = a.Email
	case a.Description != "":
		details = a.Description
	}

	value := "N/A"
	switch {
	case a.InterestRate != nil:
		value = strconv.FormatFloat(*a.InterestRate, 'f', -1, 64) + "%"
	case !a.Amount.IsZero():
		value = "$" + a.Amount.StringFixed(2)
	case a.RiskProfile != "":
		value = a.RiskProfile
	}

	return Row{ID: a.ID, Primary: primary, Details: details, Value: value}
}

// matches reports whether an entity satisfies the free-text query: a
// case-insensitive substring test against name, email, description,
// category and the stringified id. The empty query matches everything.
func matches(e Entity, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	a := e.Attrs()

	for _, field := range []string{
		a.Name,
		a.Email,
		a.Description,
		a.Category,
		strconv.FormatInt(a.ID, 10),
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
