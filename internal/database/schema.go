package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SubscriptionUnpaid string = "unpaid"
	SubscriptionPaid   string = "paid"
)

// User holds the upstream-issued identity plus the wellness profile. The id is
// opaque to this service; authentication happens before requests reach us.
type User struct {
	Id                 string `gorm:"primaryKey"`
	SubscriptionStatus string `gorm:"size:20;not null;default:unpaid"`
	CreationTime       time.Time

	Weight         sql.NullFloat64
	Height         sql.NullFloat64
	Age            sql.NullInt64
	Gender         sql.NullString
	FoodPreference sql.NullString
}

type Chat struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId string    `gorm:"index;not null"`

	Title        string `gorm:"not null"`
	CreationTime time.Time

	Messages []ChatMessage `gorm:"foreignKey:ChatId;constraint:OnDelete:CASCADE"`
}

// ChatMessage rows carry an auto-increment Seq so message order is the append
// order, never the timestamp (timestamps may tie).
type ChatMessage struct {
	Seq    uint      `gorm:"primaryKey"`
	Id     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ChatId uuid.UUID `gorm:"type:uuid;index;not null"`

	Role         string `gorm:"size:20;not null"` // 'user', 'system' or 'assistant'
	Content      string
	CreationTime time.Time
}

type DietPlan struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId string    `gorm:"index;not null"`

	WeekStartDate time.Time      `gorm:"index;not null"`
	DailyPlans    datatypes.JSON `gorm:"not null"` // [{"day":…,"meals":…,"remedies":…},…] x7
	CreationTime  time.Time
}

type WellnessCheckIn struct {
	ID     uint   `gorm:"primaryKey"`
	UserId string `gorm:"index;not null"`

	Date         string         `gorm:"size:10;not null"` // YYYY-MM-DD, local
	Responses    datatypes.JSON `gorm:"not null"`         // {"question-key": "answer"}
	CreationTime time.Time
}
