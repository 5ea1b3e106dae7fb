package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SQLite only supports one writer at a time, so we need a lock
// whenever we write to the database
var dbMutex sync.Mutex

func EnsureUser(ctx context.Context, db *gorm.DB, userId string) (User, error) {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	var user User
	err := db.WithContext(ctx).
		Where(User{Id: userId}).
		Attrs(User{SubscriptionStatus: SubscriptionUnpaid, CreationTime: time.Now()}).
		FirstOrCreate(&user).Error
	if err != nil {
		return User{}, fmt.Errorf("could not ensure user %s: %w", userId, err)
	}
	return user, nil
}

func GetUser(ctx context.Context, db *gorm.DB, userId string) (User, error) {
	var user User
	err := db.WithContext(ctx).First(&user, "id = ?", userId).Error
	return user, err
}

func UpdateUserProfile(ctx context.Context, db *gorm.DB, userId string, weight, height float64, age int, gender, foodPreference string) error {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	updates := map[string]any{
		"weight":          weight,
		"height":          height,
		"age":             age,
		"gender":          gender,
		"food_preference": foodPreference,
	}
	return db.WithContext(ctx).Model(&User{Id: userId}).Updates(updates).Error
}

func GetChats(ctx context.Context, db *gorm.DB, userId string) ([]Chat, error) {
	var chats []Chat
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("creation_time DESC").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Find(&chats).Error
	return chats, err
}

func CreateChat(ctx context.Context, db *gorm.DB, chat *Chat) error {
	dbMutex.Lock()
	defer dbMutex.Unlock()
	return db.WithContext(ctx).Create(chat).Error
}

func GetChat(ctx context.Context, db *gorm.DB, userId string, chatId uuid.UUID) (Chat, error) {
	var chat Chat
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatId, userId).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&chat).Error
	return chat, err
}

// AppendMessage persists a message for a chat the user owns. Returns
// gorm.ErrRecordNotFound if the chat does not exist for that user.
func AppendMessage(ctx context.Context, db *gorm.DB, userId string, message *ChatMessage) error {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	var chat Chat
	if err := db.WithContext(ctx).Select("id").Where("id = ? AND user_id = ?", message.ChatId, userId).First(&chat).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Create(message).Error
}

func CreateDietPlan(ctx context.Context, db *gorm.DB, plan *DietPlan) error {
	dbMutex.Lock()
	defer dbMutex.Unlock()
	return db.WithContext(ctx).Create(plan).Error
}

// GetLatestPlanSince returns the newest plan whose week start is at or after
// the given time. The bool reports whether one exists; absence is not an error.
func GetLatestPlanSince(ctx context.Context, db *gorm.DB, userId string, weekStart time.Time) (DietPlan, bool, error) {
	var plan DietPlan
	err := db.WithContext(ctx).
		Where("user_id = ? AND week_start_date >= ?", userId, weekStart).
		Order("week_start_date DESC, creation_time DESC").
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DietPlan{}, false, nil
	}
	if err != nil {
		return DietPlan{}, false, err
	}
	return plan, true, nil
}

func CreateCheckIn(ctx context.Context, db *gorm.DB, checkIn *WellnessCheckIn) error {
	dbMutex.Lock()
	defer dbMutex.Unlock()
	return db.WithContext(ctx).Create(checkIn).Error
}

func GetCheckIns(ctx context.Context, db *gorm.DB, userId string) ([]WellnessCheckIn, error) {
	var checkIns []WellnessCheckIn
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("date DESC, id DESC").
		Find(&checkIns).Error
	return checkIns, err
}
