package config

import (
	"fmt"
	"log"
	"os"

	"github.com/punkyalice/Foodprep/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.InventoryItem{},
		&models.InventoryEvent{},
		&models.IDCounter{},
		&models.ItemTypeDefault{},
		&models.Container{},
		&models.ContainerType{},
		&models.MealSet{},
		&models.MealSetRequirement{},
		&models.MealSetItem{},
		&models.Set{},
		&models.SetComponent{},
		&models.SetBox{},
		&models.SetBoxComponent{},
		&models.Recipe{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := seedTypeRows(); err != nil {
		log.Fatalf("Seeding type defaults failed: %v", err)
	}
}

// seedTypeRows makes sure every item type has its counter row and a
// shelf-life default row, so code generation never hits a missing
// counter on a fresh database.
func seedTypeRows() error {
	defaults := map[string]int{
		"M": 90,  // meal
		"P": 120, // protein
		"S": 60,  // sauce
		"B": 90,  // side
		"Z": 90,  // base
		"F": 60,  // breakfast
		"D": 60,  // dessert
		"X": 90,  // misc
	}

	for itemType, days := range defaults {
		counter := models.IDCounter{ItemType: itemType, NextNumber: 1}
		if err := DB.Where("item_type = ?", itemType).FirstOrCreate(&counter).Error; err != nil {
			return err
		}

		def := models.ItemTypeDefault{ItemType: itemType, BestBeforeDays: days, ThawMethod: "NONE"}
		if err := DB.Where("item_type = ?", itemType).FirstOrCreate(&def).Error; err != nil {
			return err
		}
	}
	return nil
}
