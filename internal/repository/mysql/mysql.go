package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL and returns the handle; callers inject it into the
// repositories (no package-global connection).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
