package clause

import (
	"fmt"
	"strconv"
	"strings"
)

// Limit restricts the number of returned rows. The zero value means no limit.
type Limit struct {
	Offset int
	Count  int

	paged bool
}

// Take limits the result to count rows.
func Take(count int) Limit {
	return Limit{Count: count}
}

// Page skips offset rows and returns at most count rows.
func Page(offset, count int) Limit {
	return Limit{Offset: offset, Count: count, paged: true}
}

// ParseLimit reads "n" or "offset,count". The empty string means no limit.
func ParseLimit(limit string) (Limit, error) {
	limit = strings.TrimSpace(limit)
	if limit == "" {
		return Limit{}, nil
	}

	if offsetText, countText, ok := strings.Cut(limit, ","); ok {
		offset, err := strconv.Atoi(strings.TrimSpace(offsetText))
		if err != nil {
			return Limit{}, fmt.Errorf("%w: %q", ErrInvalidLimit, limit)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countText))
		if err != nil {
			return Limit{}, fmt.Errorf("%w: %q", ErrInvalidLimit, limit)
		}
		return Page(offset, count), nil
	}

	count, err := strconv.Atoi(limit)
	if err != nil {
		return Limit{}, fmt.Errorf("%w: %q", ErrInvalidLimit, limit)
	}
	return Take(count), nil
}

// IsPaged reports whether l was built with an offset.
func (l Limit) IsPaged() bool {
	return l.paged
}

// FormatLimit renders " LIMIT n" or " LIMIT offset,count". A zero count without an offset
// renders the empty string.
func (b *Builder) FormatLimit(l Limit) (string, error) {
	if l.Offset < 0 || l.Count < 0 {
		return "", fmt.Errorf("%w: offset %d, count %d", ErrInvalidLimit, l.Offset, l.Count)
	}

	switch {
	case l.paged:
		return " LIMIT " + strconv.Itoa(l.Offset) + "," + strconv.Itoa(l.Count), nil
	case l.Count > 0:
		return " LIMIT " + strconv.Itoa(l.Count), nil
	default:
		return "", nil
	}
}
