package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/officelayout/directory-backend/internal/config"
	"github.com/officelayout/directory-backend/internal/database"
	"github.com/officelayout/directory-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the first admin account. There is no self-registration, so a fresh
// deployment needs this once before anyone can log in.
func main() {
	username := flag.String("username", "", "username for the new admin account")
	password := flag.String("password", "", "password for the new admin account")
	employeeID := flag.String("employee-id", "", "EmployeeID to link the account to (optional)")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username: *username,
		Password: string(hash),
		UserType: models.RoleAdmin,
	}
	if *employeeID != "" {
		user.EmployeeID = sql.NullString{String: *employeeID, Valid: true}
	}

	userRepo := database.NewUserRepository(db)
	if err := userRepo.CreateAccount(user); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	fmt.Printf("Admin account %q created in %s\n", *username, cfg.Database.Path)
}
