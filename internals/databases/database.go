package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kampusku_backend/internals/configs"
	acModel "kampusku_backend/internals/features/school/academics/model"
	attModel "kampusku_backend/internals/features/school/attendance/model"
	slotModel "kampusku_backend/internals/features/school/time_slots/model"
	ttModel "kampusku_backend/internals/features/school/timetable/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kampusku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate utk semua model + index/constraint
// mentah yang tidak bisa dinyatakan lewat tag (XOR check, partial
// unique index jadwal).
func Migrate() {
	if err := DB.AutoMigrate(
		&acModel.DepartmentModel{},
		&acModel.BatchModel{},
		&acModel.FacultyModel{},
		&acModel.StudentModel{},
		&acModel.SubjectModel{},
		&slotModel.TimeSlotModel{},
		&ttModel.TimetableEntryModel{},
		&attModel.AttendanceSessionModel{},
		&attModel.AttendanceRecordModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	if err := slotModel.EnsureIndexes(DB); err != nil {
		log.Fatalf("❌ EnsureIndexes time_slots gagal: %v", err)
	}
	if err := ttModel.EnsureIndexes(DB); err != nil {
		log.Fatalf("❌ EnsureIndexes timetable gagal: %v", err)
	}
	log.Println("✅ Migrasi selesai.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
