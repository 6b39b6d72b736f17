package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	"github.com/vladimiradmaev/fitness-helper/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	// Load .env if present
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	tables, err := calories.LoadTables(cfg.TablesFile)
	if err != nil {
		fmt.Printf("❌ Calorie tables are invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.TelegramToken))
	fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.GeminiAPIKey))
	fmt.Printf("  - OpenAI API Key: %s\n", maskToken(cfg.OpenAIAPIKey))
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == "sqlite" {
		fmt.Printf("  - SQLite Path: %s\n", cfg.DB.SQLitePath)
	} else {
		fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
		fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	if cfg.Redis.Enabled() {
		fmt.Printf("  - Redis: %s:%s\n", cfg.Redis.Host, cfg.Redis.Port)
	} else {
		fmt.Printf("  - Redis: <disabled, state kept in memory>\n")
	}
	fmt.Printf("  - API Address: %s\n", cfg.APIAddr)
	fmt.Printf("  - Timezone: %s\n", cfg.Location())
	fmt.Printf("  - Digest Schedule: %s", cfg.DigestSchedule)
	if sched, err := cron.ParseStandard(cfg.DigestSchedule); err == nil {
		fmt.Printf(" (next run %s)", sched.Next(time.Now().In(cfg.Location())).Format("Mon 02 Jan 15:04"))
	}
	fmt.Println()
	fmt.Printf("  - Calorie Tables: %d fruits, %d activities (default MET %.1f)\n", len(tables.Fruits), len(tables.Activities), tables.DefaultMET)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
