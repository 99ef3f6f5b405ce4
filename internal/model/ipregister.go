package model

import "time"

// IPRegister records one account registration from an IP address. Rows are
// only ever counted against the monthly quota, never joined to accounts.
type IPRegister struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	IPAddress string    `gorm:"size:64;not null;index:idx_ip_registers_ip" json:"ip_address"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_ip_registers_created_at" json:"created_at"`
}

func (IPRegister) TableName() string {
	return "ip_registers"
}
