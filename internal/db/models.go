package db

import (
	"time"

	"gorm.io/datatypes"
)

type GameResult struct {
	ID        uint           `gorm:"primaryKey"`
	RoomID    string         `gorm:"size:64;uniqueIndex;not null"`
	Summary   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	Players   []PlayerResult
}

type PlayerResult struct {
	ID           uint      `gorm:"primaryKey"`
	GameResultID uint      `gorm:"index;not null;uniqueIndex:idx_results_game_player"`
	PlayerID     string    `gorm:"size:128;not null;uniqueIndex:idx_results_game_player"`
	Name         string    `gorm:"size:64;not null"`
	Score        int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
}
