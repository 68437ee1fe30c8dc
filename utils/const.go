package utils

const (
	UserAgent = "doggobot/1.0 (Telegram Bot; +https://github.com/Brawl345/doggobot)"
)
