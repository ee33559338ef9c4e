package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Discussion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CourseID  uint           `gorm:"index;not null" json:"courseId"`
	Course    *Course        `json:"course,omitempty"`
	UserID    uint           `gorm:"index;not null" json:"userId"`
	User      *User          `json:"user,omitempty"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Replies   datatypes.JSON `json:"replies"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type Reply struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d *Discussion) ReplyList() ([]Reply, error) {
	replies := []Reply{}
	if len(d.Replies) == 0 {
		return replies, nil
	}
	if err := json.Unmarshal(d.Replies, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// AppendReply keeps replies in the order they were posted.
func (d *Discussion) AppendReply(r Reply) error {
	replies, err := d.ReplyList()
	if err != nil {
		return err
	}
	b, err := json.Marshal(append(replies, r))
	if err != nil {
		return err
	}
	d.Replies = datatypes.JSON(b)
	return nil
}
