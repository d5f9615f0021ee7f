package database

import (
	"fmt"
	"log"
	"time"

	"eyewear/config"
	"eyewear/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	logMode := logger.Info
	if cfg.Server.Mode == "release" {
		logMode = logger.Warn
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数（避免长连接被 MySQL 回收导致 gone away）
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(280 * time.Second)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.Product{},
		&models.User{},
		&models.Favorite{},
		&models.Salesperson{},
		&models.SalesShare{},
		&models.PageView{},
	); err != nil {
		return err
	}

	// 兼容历史数据：早期导入的商品 is_active 可能为空，统一视为上架
	_ = DB.Model(&models.Product{}).
		Where("is_active IS NULL OR is_active = ''").
		Update("is_active", models.ActiveFlagYes).Error

	// 兼容历史数据：旧版分享记录缺少发送统计列时迁移默认值为 NULL
	_ = DB.Model(&models.SalesShare{}).
		Where("sent_count IS NULL").
		Update("sent_count", 0).Error

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
