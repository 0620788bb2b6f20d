package domain

import "time"

// SysOprLog records an admin mutation for auditing. Rows older than a year
// are purged by a background job.
type SysOprLog struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	OprName   string    `json:"opr_name"`
	OprIP     string    `json:"opr_ip"`
	OptAction string    `json:"opt_action"`
	OptDesc   string    `json:"opt_desc"`
	OptTime   time.Time `gorm:"index" json:"opt_time"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}
