//go:build ignore

// Interactive editor for users.json.
//
//	go run scripts/manage-users.go [users.json]
//
// Send SIGHUP to a running server to pick up the changes.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"supportdesk/internal/auth"
)

var reader = bufio.NewReader(os.Stdin)

func main() {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════╗")
	fmt.Println("║   Support Desk — Agent Management            ║")
	fmt.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()

	usersFile := "users.json"
	if len(os.Args) > 1 {
		usersFile = os.Args[1]
	}

	cfg := loadConfig(usersFile)
	for {
		fmt.Println("What would you like to do?")
		fmt.Println("  1) Add an agent")
		fmt.Println("  2) List agents")
		fmt.Println("  3) Remove an agent")
		fmt.Println("  4) Toggle an agent (enable/disable)")
		fmt.Println("  5) Reset an agent's password")
		fmt.Println("  6) Generate password hash only")
		fmt.Println("  7) Save and exit")
		fmt.Println("  8) Exit without saving")
		fmt.Println()

		switch prompt("Choose an option (1-8)") {
		case "1":
			addUser(cfg)
		case "2":
			listUsers(cfg)
		case "3":
			removeUser(cfg)
		case "4":
			toggleUser(cfg)
		case "5":
			resetPassword(cfg)
		case "6":
			generateHash()
		case "7":
			saveConfig(usersFile, cfg)
			fmt.Println("\n✅ Saved to " + usersFile)
			fmt.Println("   Reload a running server with: kill -HUP <pid>")
			return
		case "8":
			fmt.Println("Exiting without saving.")
			return
		default:
			fmt.Println("Invalid option. Try again.")
		}
		fmt.Println()
	}
}

func addUser(cfg *auth.UsersConfig) {
	fmt.Println("\n── Add Agent ─────────────────────────────")

	email := prompt("Email")
	if email == "" {
		fmt.Println("Email cannot be empty.")
		return
	}
	if findUser(cfg, email) >= 0 {
		fmt.Println("⚠️  Agent '" + email + "' already exists.")
		return
	}

	hash, ok := promptPassword()
	if !ok {
		return
	}

	cfg.Users = append(cfg.Users, auth.User{
		Email:        email,
		DisplayName:  prompt("Display name (optional)"),
		PasswordHash: hash,
		Enabled:      true,
	})
	fmt.Println("✅ Added " + email)
}

func listUsers(cfg *auth.UsersConfig) {
	fmt.Println("\n── Agents ────────────────────────────────")
	if len(cfg.Users) == 0 {
		fmt.Println("  (none)")
		return
	}
	for i, u := range cfg.Users {
		status := "enabled"
		if !u.Enabled {
			status = "disabled"
		}
		fmt.Printf("  %d) %-32s %-20s %s\n", i+1, u.Email, u.DisplayName, status)
	}
	if len(cfg.IPWhitelist) > 0 {
		fmt.Println("  IP whitelist: " + strings.Join(cfg.IPWhitelist, ", "))
	}
}

func removeUser(cfg *auth.UsersConfig) {
	idx := findUser(cfg, prompt("Email to remove"))
	if idx < 0 {
		fmt.Println("Agent not found.")
		return
	}
	removed := cfg.Users[idx].Email
	cfg.Users = append(cfg.Users[:idx], cfg.Users[idx+1:]...)
	fmt.Println("🗑  Removed " + removed)
}

func toggleUser(cfg *auth.UsersConfig) {
	idx := findUser(cfg, prompt("Email to toggle"))
	if idx < 0 {
		fmt.Println("Agent not found.")
		return
	}
	cfg.Users[idx].Enabled = !cfg.Users[idx].Enabled
	fmt.Printf("%s is now enabled=%v\n", cfg.Users[idx].Email, cfg.Users[idx].Enabled)
}

func resetPassword(cfg *auth.UsersConfig) {
	idx := findUser(cfg, prompt("Email"))
	if idx < 0 {
		fmt.Println("Agent not found.")
		return
	}
	hash, ok := promptPassword()
	if !ok {
		return
	}
	cfg.Users[idx].PasswordHash = hash
	fmt.Println("✅ Password updated")
}

func generateHash() {
	hash, ok := promptPassword()
	if !ok {
		return
	}
	fmt.Println("\nPassword hash (copy this to users.json):")
	fmt.Println(hash)
}

func promptPassword() (string, bool) {
	password := prompt("Password")
	if password == "" {
		fmt.Println("Password cannot be empty.")
		return "", false
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Println("Error hashing password:", err)
		return "", false
	}
	return hash, true
}

func findUser(cfg *auth.UsersConfig, email string) int {
	for i, u := range cfg.Users {
		if strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email)) {
			return i
		}
	}
	return -1
}

func loadConfig(path string) *auth.UsersConfig {
	cfg := &auth.UsersConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Println("Error reading", path+":", err)
			os.Exit(1)
		}
		return cfg
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		fmt.Println("Error parsing", path+":", err)
		os.Exit(1)
	}
	return cfg
}

func saveConfig(path string, cfg *auth.UsersConfig) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fmt.Println("Error encoding config:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		fmt.Println("Error writing", path+":", err)
		os.Exit(1)
	}
}

func prompt(label string) string {
	fmt.Print(label + ": ")
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
