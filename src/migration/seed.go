package migration

import (
	"context"
	"fmt"
	"math/rand"

	"git.teamcore.network/tcn/tcn/src/auth"
	"git.teamcore.network/tcn/tcn/src/config"
	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/migration/types"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/tcndata"
	"git.teamcore.network/tcn/tcn/src/website"
	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/cobra"
)

func init() {
	seedCommand := &cobra.Command{
		Use:   "seed",
		Short: "Migrate the database and seed the baseline roles",
		Run: func(cmd *cobra.Command, args []string) {
			BareMinimumSeed()
		},
	}

	sampleDataCommand := &cobra.Command{
		Use:   "sampledata",
		Short: "Recreate the database with sample data for local dev",
		Run: func(cmd *cobra.Command, args []string) {
			SampleSeed()
		},
	}

	website.WebsiteCommand.AddCommand(seedCommand)
	website.WebsiteCommand.AddCommand(sampleDataCommand)
}

func LatestVersion() types.MigrationVersion {
	allVersions := getSortedMigrationVersions()
	return allVersions[len(allVersions)-1]
}

// Creates only what's necessary to get the site running: the schema and the
// baseline roles. Safe to run repeatedly.
func BareMinimumSeed() {
	Migrate(LatestVersion())

	ctx := context.Background()
	conn := db.NewConn()
	defer conn.Close(ctx)

	fmt.Println("Seeding baseline roles...")
	err := tcndata.SeedRoles(ctx, conn)
	if err != nil {
		panic(err)
	}
}

// Recreates the database from scratch and fills it with sample data for
// local dev. The db role in the config must have the CREATEDB attribute:
// `ALTER ROLE tcn WITH CREATEDB;`
func SampleSeed() {
	resetDB()
	BareMinimumSeed()

	ctx := context.Background()
	conn := db.NewConn()
	defer conn.Close(ctx)

	fmt.Println("Creating admin user (\"admin\"/\"password\")...")
	adminRole, err := tcndata.FetchRoleByName(ctx, conn, models.RoleAdmin)
	if err != nil {
		panic(err)
	}
	admin, err := tcndata.CreateUser(ctx, conn, "admin", "admin@example.com", auth.HashPassword("password").String(), adminRole.ID)
	if err != nil {
		panic(err)
	}

	fmt.Println("Creating normal users (all with password \"password\")...")
	memberRole, err := tcndata.FetchRoleByName(ctx, conn, models.RoleMember)
	if err != nil {
		panic(err)
	}
	hashed := auth.HashPassword("password").String()
	var members []*models.User
	for _, username := range []string{"alice", "bob", "charlie"} {
		user, err := tcndata.CreateUser(ctx, conn, username, username+"@example.com", hashed, memberRole.ID)
		if err != nil {
			panic(err)
		}
		members = append(members, user)
	}

	fmt.Println("Creating wiki pages...")
	for _, page := range []struct{ slug, title string }{
		{"getting-started", "Getting Started"},
		{"community-rules", "Community Rules"},
		{"faq", "FAQ"},
	} {
		_, err := tcndata.CreateWikiPage(ctx, conn, admin.ID, page.slug, page.title, lorem.Paragraph(3, 6))
		if err != nil {
			panic(err)
		}
	}

	fmt.Println("Creating forum content...")
	for _, name := range []string{"General", "Show and Tell", "Site Feedback"} {
		category, err := tcndata.CreateCategory(ctx, conn, name, lorem.Sentence(4, 10))
		if err != nil {
			panic(err)
		}

		numThreads := 2 + rand.Intn(4)
		for i := 0; i < numThreads; i++ {
			author := members[rand.Intn(len(members))]
			thread, _, err := tcndata.CreateThread(ctx, conn, category.ID, author.ID, lorem.Sentence(3, 8), lorem.Paragraph(1, 3))
			if err != nil {
				panic(err)
			}

			numReplies := rand.Intn(5)
			for j := 0; j < numReplies; j++ {
				replier := members[rand.Intn(len(members))]
				_, err := tcndata.CreateReply(ctx, conn, thread.ID, replier.ID, lorem.Paragraph(1, 2))
				if err != nil {
					panic(err)
				}
			}
		}
	}

	fmt.Println("Creating support tickets...")
	_, err = tcndata.CreateTicket(ctx, conn, &members[0].ID, members[0].Email, "I can't change my username", lorem.Paragraph(1, 2))
	if err != nil {
		panic(err)
	}
	_, err = tcndata.CreateTicket(ctx, conn, nil, "visitor@example.com", "Question about the forum", lorem.Paragraph(1, 2))
	if err != nil {
		panic(err)
	}

	fmt.Println("Done!")
}

func resetDB() {
	fmt.Println("Resetting database...")
	ctx := context.Background()

	// Connect to the always-present template1 db; we can't drop the db we are
	// connected to.
	template1DSN := fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s",
		config.Config.Postgres.User,
		config.Config.Postgres.Password,
		config.Config.Postgres.Hostname,
		config.Config.Postgres.Port,
		"template1",
	)
	// Use the low-level pgconn API because pgx wraps Exec in a transaction,
	// and DROP DATABASE refuses to run inside one.
	lowLevelConn, err := pgconn.Connect(ctx, template1DSN)
	if err != nil {
		panic(fmt.Errorf("failed to connect to db: %w", err))
	}
	defer lowLevelConn.Close(ctx)

	result := lowLevelConn.ExecParams(ctx, fmt.Sprintf("DROP DATABASE %s", config.Config.Postgres.DbName), nil, nil, nil, nil)
	_, err = result.Close()
	pgErr, isPgError := err.(*pgconn.PgError)
	if err != nil {
		if !(isPgError && pgErr.SQLState() == "3D000") { // db does not exist
			panic(fmt.Errorf("failed to drop db: %w", err))
		}
	}

	result = lowLevelConn.ExecParams(ctx, fmt.Sprintf("CREATE DATABASE %s", config.Config.Postgres.DbName), nil, nil, nil, nil)
	_, err = result.Close()
	if err != nil {
		panic(fmt.Errorf("failed to create db: %w", err))
	}
}
