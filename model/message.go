package model

// Message is one append-only chat line inside a room. Date and Time are
// separate ISO-8601 text columns ("2006-01-02", "15:04:05"); that keeps the
// historical layout and stays lexically sortable, so (date, time) string
// ordering equals chronological ordering.
type Message struct {
	ID uint `gorm:"primarykey" json:"id"`

	Sender   string `gorm:"not null;index" json:"sender"`
	Receiver string `gorm:"not null;index" json:"receiver"`
	Body     string `gorm:"column:message;not null" json:"message"`
	RoomID   string `gorm:"column:room_id;not null;index" json:"room_id"`
	Date     string `gorm:"not null" json:"date"`
	Time     string `gorm:"not null" json:"time"`
}
