package sql

import (
	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/model"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/jmoiron/sqlx"
)

type chatService struct {
	*sqlx.DB
	log *logger.Logger
}

func NewChatService(db *sqlx.DB) *chatService {
	return &chatService{
		DB:  db,
		log: logger.New("chatService"),
	}
}

func (db *chatService) Allow(chat *gotgbot.Chat) error {
	const query = `UPDATE chats SET allowed = true WHERE id = ?`
	_, err := db.Exec(query, chat.Id)
	return err
}

func (db *chatService) Create(chat *gotgbot.Chat) error {
	const query = `INSERT INTO
    chats (id, title)
    VALUES (?, ?)
    ON DUPLICATE KEY UPDATE title = VALUES(title)`
	_, err := db.Exec(query, chat.Id, chat.Title)
	return err
}

func (db *chatService) CreateTx(tx *sqlx.Tx, chat *gotgbot.Chat) error {
	const query = `INSERT INTO
    chats (id, title)
    VALUES (?, ?)
    ON DUPLICATE KEY UPDATE title = VALUES(title)`
	_, err := tx.Exec(query, chat.Id, chat.Title)
	return err
}

func (db *chatService) Deny(chat *gotgbot.Chat) error {
	const query = `UPDATE chats SET allowed = false WHERE id = ?`
	_, err := db.Exec(query, chat.Id)
	return err
}

func (db *chatService) GetAllAllowed() ([]int64, error) {
	const query = `SELECT id, title, allowed FROM chats WHERE allowed = true`

	var chats []model.Chat
	err := db.Select(&chats, query)

	allowed := make([]int64, 0, len(chats))
	for _, chat := range chats {
		allowed = append(allowed, chat.ID)
	}

	return allowed, err
}
