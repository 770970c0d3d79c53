package db

import (
	"encoding/json"
	"errors"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bm254now/team-coconut/internal/game"
)

// ResultStore is the outbound persistence boundary: finished games are
// written here once, on explicit end-game. A nil connection disables
// persistence entirely, which the gateway tolerates.
type ResultStore struct {
	conn *gorm.DB
}

func NewResultStore(conn *gorm.DB) *ResultStore {
	return &ResultStore{conn: conn}
}

// SaveResult records the final roster and scores of a finished game. A
// duplicate room id means the result was already written; that is not an
// error worth surfacing.
func (s *ResultStore) SaveResult(roomID string, players []game.Player) error {
	if s.conn == nil {
		return nil
	}
	summary := make(map[string]int, len(players))
	for _, player := range players {
		summary[player.ID] = player.Score
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	record := GameResult{
		RoomID:  roomID,
		Summary: datatypes.JSON(payload),
	}
	for _, player := range players {
		record.Players = append(record.Players, PlayerResult{
			PlayerID: player.ID,
			Name:     player.Name,
			Score:    player.Score,
		})
	}
	if err := s.conn.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
