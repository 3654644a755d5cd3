package main

import (
	"context"
	"flag"
	"log"
	"time"

	"gradportal/internal/config"
	"gradportal/internal/directory"
	"gradportal/internal/identity"
	"gradportal/internal/store"
)

// Seed migrates the schema and inserts the default role set. With -demo
// it also creates one directory entry per demo identity.
func main() {
	demo := flag.Bool("demo", false, "also seed the demo directory entries")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db.Client); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	log.Println("schema up to date")

	svc := directory.NewService(directory.NewRepository(db.Client), nil, cfg.SeedLockTTL)

	roles, err := svc.SeedDefaultRoles(ctx)
	if err != nil {
		log.Fatalf("role seed failed: %v", err)
	}
	log.Printf("roles present: %d", len(roles))

	if !*demo {
		return
	}

	roleByName := make(map[string]string, len(roles))
	for _, role := range roles {
		roleByName[role.Name] = role.ID
	}

	for _, id := range identity.DemoIdentities() {
		_, err := svc.CreateUser(ctx, directory.NewUser{
			Name:   id.Name,
			Email:  id.Email,
			RoleID: roleByName[string(id.Role)],
		})
		if err != nil {
			log.Printf("demo user %s skipped: %v", id.Email, err)
			continue
		}
		log.Printf("demo user created: %s", id.Email)
	}
}
