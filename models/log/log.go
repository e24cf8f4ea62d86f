package log

import "time"

// Log is a per-request audit row written asynchronously by the logger.
type Log struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Method          string    `gorm:"type:varchar(10)" json:"method"`
	URL             string    `gorm:"type:varchar(512)" json:"url"`
	ClientIP        string    `gorm:"type:varchar(64)" json:"client_ip"`
	RequestBody     string    `gorm:"type:text" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers"`
	StatusCode      int       `json:"status_code"`
	CreatedAt       time.Time `json:"created_at"`
}
