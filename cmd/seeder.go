package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/raihanmd/employee-management/internal/auth"
)

var seedPlaintext bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a bootstrap admin account",
	Long:  `Seed the database with the bootstrap admin account used for first login.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := openGorm(db)
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		adminEmail := "admin@example.com"
		adminName := "Administrator"
		adminPassword := "admin123"

		var exists int
		row := gormDB.Raw("SELECT 1 FROM admins WHERE email = ?", adminEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("bootstrap admin already exists:", adminEmail)
			return
		}

		stored := adminPassword
		if !seedPlaintext {
			stored, err = auth.HashPassword(adminPassword, cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash bootstrap password: %v", err)
			}
		}

		if err := gormDB.Exec(
			"INSERT INTO admins (name, email, password, created_at) VALUES (?, ?, ?, now())",
			adminName, adminEmail, stored,
		).Error; err != nil {
			log.Fatalf("failed to insert bootstrap admin: %v", err)
		}

		fmt.Println("Seeded bootstrap admin:", adminEmail)
		fmt.Printf("Admin credentials for testing: { email: '%s', password: '%s' }\n", adminEmail, adminPassword)
		if seedPlaintext {
			fmt.Println("WARNING: stored as plaintext; the login path will log every legacy match")
		}
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedPlaintext, "plaintext", false, "store the bootstrap password as plaintext (legacy setups)")
}
