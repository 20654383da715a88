package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"tabletoprpg/internal/config"
	"tabletoprpg/internal/db"
	"tabletoprpg/internal/model"
	"tabletoprpg/internal/repository"
)

const demoPassword = "changeme123"

type seedUser struct {
	Username string
	Email    string
	Roles    model.RoleSet
}

var demoUsers = []seedUser{
	{Username: "gm_elena", Email: "elena@example.com", Roles: model.RoleSet{model.RolePlayer, model.RoleGameMaster}},
	{Username: "player_marco", Email: "marco@example.com", Roles: model.RoleSet{model.RolePlayer}},
	{Username: "player_svea", Email: "svea@example.com", Roles: model.RoleSet{model.RolePlayer}},
	{Username: "admin", Email: "admin@example.com", Roles: model.RoleSet{model.RolePlayer, model.RoleAdmin}},
}

var demoItems = []model.Item{
	{Name: "Longsword", Description: "A well-balanced steel longsword.", Weight: decimal.NewFromFloat(1.5), Price: 15},
	{Name: "Healing Potion", Description: "Restores a small amount of vitality.", Weight: decimal.NewFromFloat(0.5), Price: 50},
	{Name: "Rope (50ft)", Description: "Sturdy hempen rope.", Weight: decimal.NewFromFloat(5), Price: 1},
	{Name: "Torch", Description: "Burns for about an hour.", Weight: decimal.NewFromFloat(1), Price: 1},
	{Name: "Lockpicks", Description: "A set of fine thieves' tools.", Weight: decimal.NewFromFloat(0.25), Price: 25},
}

func main() {
	log.Println("Starting seed script...")

	ctx := context.Background()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Campaign{},
		&model.CampaignMember{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	campaignRepo := repository.NewCampaignRepository(gormDB)
	memberRepo := repository.NewMemberRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	users := make(map[string]*model.User, len(demoUsers))
	created := 0
	for _, su := range demoUsers {
		if existing, err := userRepo.FindByUsername(ctx, su.Username); err == nil {
			users[su.Username] = existing
			continue
		}
		user := &model.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: string(hash),
			Roles:        su.Roles,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Username, err)
		}
		users[su.Username] = user
		created++
	}
	log.Printf("Seeded users: %d created, %d already present", created, len(demoUsers)-created)

	created = 0
	for _, item := range demoItems {
		taken, err := itemRepo.NameTaken(ctx, item.Name)
		if err != nil {
			log.Fatalf("Failed to check item %s: %v", item.Name, err)
		}
		if taken {
			continue
		}
		it := item
		if err := itemRepo.Create(ctx, &it); err != nil {
			log.Fatalf("Failed to create item %s: %v", item.Name, err)
		}
		created++
	}
	log.Printf("Seeded items: %d created, %d already present", created, len(demoItems)-created)

	gm := users["gm_elena"]
	existing, err := campaignRepo.ListByGM(ctx, gm.ID)
	if err != nil {
		log.Fatalf("Failed to list campaigns: %v", err)
	}
	if len(existing) > 0 {
		log.Println("Demo campaign already present, nothing to do")
		return
	}

	campaign := &model.Campaign{
		Name:        "The Sunken Citadel",
		Description: "An introductory dungeon crawl beneath the ruined fortress.",
		GMID:        gm.ID,
	}
	if err := campaignRepo.Create(ctx, campaign); err != nil {
		log.Fatalf("Failed to create demo campaign: %v", err)
	}

	members := []model.CampaignMember{
		{CampaignID: campaign.ID, UserID: gm.ID, Role: model.CampaignRoleGM},
		{CampaignID: campaign.ID, UserID: users["player_marco"].ID, Role: model.CampaignRolePlayer},
		{CampaignID: campaign.ID, UserID: users["player_svea"].ID, Role: model.CampaignRolePlayer},
	}
	for i := range members {
		if err := memberRepo.Create(ctx, &members[i]); err != nil {
			log.Fatalf("Failed to add member: %v", err)
		}
	}
	log.Printf("Seeded demo campaign %q with %d members", campaign.Name, len(members))
	log.Printf("Demo password for all seeded users: %s", demoPassword)
}
