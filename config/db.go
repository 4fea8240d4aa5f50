package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"tour-backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDatabase seeds reference data the assignment engine depends on when the
// tables are empty. Safe to call on every startup.
func SeedDatabase() {
	var optCount int64
	DB.Model(&models.ChoiceOption{}).Count(&optCount)

	if optCount > 0 {
		log.Println("Choice options already seeded")
	} else {
		options := []models.ChoiceOption{
			{ID: uuid.NewString(), OptionKey: "lower_antelope", NameKo: "로어 앤텔로프 캐년", NameEn: "Lower Antelope Canyon"},
			{ID: uuid.NewString(), OptionKey: "antelope_x", NameKo: "앤텔로프 X 캐년", NameEn: "Antelope X Canyon"},
			{ID: uuid.NewString(), OptionKey: "upper_antelope", NameKo: "어퍼 앤텔로프 캐년", NameEn: "Upper Antelope Canyon"},
		}
		if err := DB.Create(&options).Error; err != nil {
			log.Printf("warning: failed to seed choice options: %v", err)
		} else {
			log.Println("Choice options seeded")
		}
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(AppConfig.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", AppConfig.DBUser)
	pass := envOrDefault("DB_PASS", AppConfig.DBPass)
	host := envOrDefault("DB_HOST", AppConfig.DBHost)
	port := envOrDefault("DB_PORT", AppConfig.DBPort)
	dbName := envOrDefault("DB_NAME", AppConfig.DBName)

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	logLevel := logger.Warn
	if !IsProduction() {
		logLevel = logger.Info
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logLevel,
			Colorful:      !IsProduction(),
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.TeamMember{},
		&models.Vehicle{},
		&models.PickupHotel{},
		&models.ChoiceOption{},
		&models.Reservation{},
		&models.Tour{},
		&models.ReservationChoice{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
