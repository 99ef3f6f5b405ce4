package repository

import (
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/model"

	"gorm.io/gorm"
)

type IPRegisterRepository struct {
	db *gorm.DB
}

func NewIPRegisterRepository(db *gorm.DB) *IPRegisterRepository {
	return &IPRegisterRepository{db: db}
}

// CountSince counts registrations from ip at or after since.
func (r *IPRegisterRepository) CountSince(ip string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.IPRegister{}).
		Where("ip_address = ? AND created_at >= ?", ip, since).Count(&count).Error
	return count, err
}

// Record writes one registration event for ip.
func (r *IPRegisterRepository) Record(ip string) error {
	return r.db.Create(&model.IPRegister{IPAddress: ip}).Error
}
