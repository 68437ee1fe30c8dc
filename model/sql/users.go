package sql

import (
	"github.com/Brawl345/doggobot/logger"
	"github.com/Brawl345/doggobot/model"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/jmoiron/sqlx"
)

type userService struct {
	*sqlx.DB
	log *logger.Logger
}

func NewUserService(db *sqlx.DB) *userService {
	return &userService{
		DB:  db,
		log: logger.New("userService"),
	}
}

func (db *userService) Allow(user *gotgbot.User) error {
	const query = `UPDATE users SET allowed = true WHERE id = ?`
	_, err := db.Exec(query, user.Id)
	return err
}

func (db *userService) Create(user *gotgbot.User) error {
	const query = `INSERT INTO
    users (id, first_name, last_name, username)
    VALUES (?, ?, ?, ?)
    ON DUPLICATE KEY UPDATE first_name = VALUES(first_name), last_name = VALUES(last_name),
                            username = VALUES(username), msg_count = msg_count + 1`
	_, err := db.Exec(
		query,
		user.Id,
		user.FirstName,
		NewNullString(user.LastName),
		NewNullString(user.Username),
	)
	return err
}

func (db *userService) CreateTx(tx *sqlx.Tx, user *gotgbot.User) error {
	const query = `INSERT INTO
    users (id, first_name, last_name, username)
    VALUES (?, ?, ?, ?)
    ON DUPLICATE KEY UPDATE first_name = VALUES(first_name), last_name = VALUES(last_name),
                            username = VALUES(username)`
	_, err := tx.Exec(
		query,
		user.Id,
		user.FirstName,
		NewNullString(user.LastName),
		NewNullString(user.Username),
	)
	return err
}

func (db *userService) Deny(user *gotgbot.User) error {
	const query = `UPDATE users SET allowed = false WHERE id = ?`
	_, err := db.Exec(query, user.Id)
	return err
}

func (db *userService) GetAllAllowed() ([]int64, error) {
	const query = `SELECT id, first_name, allowed FROM users WHERE allowed = true`

	var users []model.User
	err := db.Select(&users, query)

	allowed := make([]int64, 0, len(users))
	for _, user := range users {
		allowed = append(allowed, user.ID)
	}

	return allowed, err
}
