package models

import "time"

type ClientProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	Target             *string   `json:"target"`
	PreferableActivity *string   `json:"preferable_activity"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
