package models

import (
	"time"
)

type BaseModel struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
