package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the position of the last item of a page in (date, id) order.
type Cursor struct {
	Date time.Time
	ID   int64
}

// Precedes reports whether an item at (date, id) sorts at or before the cursor,
// i.e. whether it was already returned on an earlier page.
func (c Cursor) Precedes(date time.Time, id int64) bool {
	if date.Before(c.Date) {
		return true
	}
	return date.Equal(c.Date) && id <= c.ID
}

// EncodeToken creates a base64 encoded token from an item date and id.
func EncodeToken(date time.Time, id int64) string {
	tokenStr := fmt.Sprintf("%s|%d", date.Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a Cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}

	return Cursor{Date: date, ID: id}, nil
}
