package entities

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Servings holds the canonical JSON encoding of a recipe's servings. The
// column is text on SQLite: a JSON-declared column there has numeric
// affinity and hands NUMBER servings back as int64.
type Servings []byte

func (s Servings) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return string(s), nil
}

func (s *Servings) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
	case []byte:
		*s = append(Servings(nil), v...)
	case string:
		*s = Servings(v)
	case int64:
		*s = Servings(strconv.FormatInt(v, 10))
	case float64:
		*s = Servings(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("servings: unsupported column value %T", src)
	}
	return nil
}

func (s Servings) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

func (s *Servings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	*s = append(Servings(nil), data...)
	return nil
}

func (Servings) GormDataType() string {
	return "json"
}

func (Servings) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}
