package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UUIDList is a slice of UUIDs that implements GORM Scanner/Valuer for JSONB storage
type UUIDList []uuid.UUID

// Value implements driver.Valuer interface for GORM to store as JSONB
func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (l *UUIDList) Scan(value interface{}) error {
	if value == nil {
		*l = UUIDList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into UUIDList", value)
	}

	return json.Unmarshal(bytes, l)
}
