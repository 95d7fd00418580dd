// Package db opens the relational store and keeps its schema current
package db

import (
	"fmt"

	"streamcart/auth-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("storage.type") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("storage.dsn"))
	default:
		dialector = sqlite.Open(viper.GetString("storage.path"))
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.Session{},
		model.VerificationToken{},
		model.ResendRequest{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
