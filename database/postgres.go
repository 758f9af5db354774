package database

import (
	"fmt"
	"log"

	"matrimony-service/config"
	"matrimony-service/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var Postgres *gorm.DB

func PostgresConnect() {
	var err error
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.Config("POSTGRES_HOST"),
		config.Config("POSTGRES_PORT"),
		config.Config("POSTGRES_USER"),
		config.Config("POSTGRES_PASSWORD"),
		config.Config("POSTGRES_DB"),
	)
	// TranslateError maps unique-violation driver errors onto
	// gorm.ErrDuplicatedKey; the request ledger depends on that under
	// concurrent sends.
	Postgres, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect postgres")
	}

	log.Printf("Connection opened to Postgres")
	Postgres.AutoMigrate(
		&model.BrideProfile{},
		&model.GroomProfile{},
		&model.ConnectionRequest{},
		&model.Message{},
	)
	log.Printf("Postgres Database Migrated")
}
