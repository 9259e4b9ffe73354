package database

import (
	"arch_quiz_backend/internal/config"
	"arch_quiz_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ShouldMigrate reports whether schema migration runs on startup. Debug
// deployments always migrate; release deployments only when asked with the
// -migrate flag.
func ShouldMigrate(cfg *config.Config) bool {
	return cfg.ForceMigrate || cfg.Server.Mode != "release"
}

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Question{},
			&model.Attempt{},
			&model.Feedback{},
			&model.LectureMaterial{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		if err := seedAdmin(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// seedAdmin creates the default administrator account on an empty user table
// so the admin screens are reachable on first boot.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username: "admin",
		Password: string(hashed),
		Role:     model.Admin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Seed admin account created (username: admin)")
	return nil
}
