package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/oksasatya/go-ddd-group-chat/config"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/entity"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/repository"
	pginfra "github.com/oksasatya/go-ddd-group-chat/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-group-chat/pkg/helpers"
)

const demoPassword = "password123"

var demoUsers = []struct{ name, email string }{
	{"Ann Owner", "ann@example.com"},
	{"Bob Member", "bob@example.com"},
	{"Cid Member", "cid@example.com"},
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	groups := pginfra.NewGroupRepository(pool)

	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	seeded := make([]*entity.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		u, err := users.FindOneByEmail(ctx, d.email)
		if errors.Is(err, repository.ErrNotFound) {
			u = entity.NewUser(d.name, d.email, hash)
			err = users.Insert(ctx, u)
		}
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", d.email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, u.Email, demoPassword)
		seeded = append(seeded, u)
	}

	owner := seeded[0]
	existing, err := groups.FindByUser(ctx, owner.ID)
	if err != nil {
		log.Fatalf("failed to list groups: %v", err)
	}
	for _, g := range existing {
		if g.IsUserAdminer(owner) {
			fmt.Printf("demo group already present: id=%s name=%s\n", g.ID, g.Name)
			return
		}
	}

	g := entity.NewGroup("General", "demo group", owner)
	g.AddUserListOnGroup(seeded[1:])
	if err := groups.Insert(ctx, g); err != nil {
		log.Fatalf("failed to seed group: %v", err)
	}
	fmt.Printf("seeded group: id=%s name=%s members=%d\n", g.ID, g.Name, len(g.Members))
}
