package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategory is assigned when a recipe is created without one.
const DefaultCategory = "General"

// StringArray stores an ordered []string as a JSON text column so the same
// model works on both SQLite and Postgres. Order is preserved verbatim.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID          uuid.UUID   `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Category    string      `gorm:"size:50" json:"category"`
	Description string      `gorm:"type:text" json:"description"`
	PrepTime    string      `gorm:"size:50" json:"prepTime"`
	Difficulty  string      `gorm:"size:50" json:"difficulty"`
	Image       string      `gorm:"size:255" json:"image"`
	Ingredients StringArray `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Steps       StringArray `gorm:"type:text;not null;default:'[]'" json:"steps"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns the server-side fields the client never supplies.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	if r.Ingredients == nil {
		r.Ingredients = StringArray{}
	}
	if r.Steps == nil {
		r.Steps = StringArray{}
	}
	return nil
}
