package main

import (
	"fmt"
	"log"

	"github.com/RKMF/kammerfest/internal/config"
	"github.com/RKMF/kammerfest/internal/db"
)

func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var count int64
	db.DB.Model(&db.Editor{}).Count(&count)
	if count > 0 {
		fmt.Println("En redaktør finnes allerede, hopper over")
		return
	}

	username := cfg.SuperRootUserName
	password := cfg.SuperRootPassword
	if username == "" {
		username = "redaktor"
	}
	if password == "" {
		password = "kammerfest123"
	}

	if err := db.EnsureEditor(username, password); err != nil {
		log.Fatalf("failed to create editor: %v", err)
	}

	fmt.Println("Redaktørkonto opprettet")
	fmt.Printf("Brukernavn: %s\n", username)
	fmt.Printf("Passord: %s\n", password)
}
