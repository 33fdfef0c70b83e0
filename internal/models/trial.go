package models

import "time"

// TrialDuration длина пробного периода.
const TrialDuration = 7 * 24 * time.Hour

// Trial запись о пробном периоде аккаунта, unix-время в секундах.
type Trial struct {
	UserID  string `json:"user_id"`
	StartTS int64  `json:"start_ts"`
	EndTS   int64  `json:"end_ts"`
}

// IsActive сообщает, что пробный период ещё не закончился к моменту now.
func (t *Trial) IsActive(now time.Time) bool {
	return t.EndTS > now.Unix()
}
