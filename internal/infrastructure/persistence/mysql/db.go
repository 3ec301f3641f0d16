package mysql

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shevko/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. 开发环境开启SQL日志,生产环境关闭
// 4. 启动时AutoMigrate表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Migrate 迁移表结构
// 注意:AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
// 生产环境应使用版本化的迁移脚本
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&BookModel{},
		&UserModel{},
	)
}

// AuthorModel GORM作者模型
// Name有唯一索引:同名图书共享同一作者行,并发创建由索引兜底
type AuthorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:255;not null;comment:作者名"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. AuthorID外键关联authors表,belongs-to关系(Preload加载嵌套作者)
// 2. title/published_year/genre均有索引,服务于列表过滤与排序
// 3. 无软删除:删除即物理删除(作者行不受影响)
type BookModel struct {
	ID            uint        `gorm:"primaryKey"`
	Title         string      `gorm:"index;size:255;not null;comment:书名"`
	PublishedYear int         `gorm:"index;not null;comment:出版年份"`
	Genre         string      `gorm:"index;size:50;not null;comment:体裁"`
	AuthorID      uint        `gorm:"index;not null;comment:作者ID"`
	Author        AuthorModel `gorm:"foreignKey:AuthorID"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// UserModel GORM用户模型
type UserModel struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"uniqueIndex;size:100;not null;comment:用户名"`
	HashedPassword string `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}
