package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/fitsetup/app/repositories"
	"github.com/shashiranjanraj/fitsetup/app/routes"
	"github.com/shashiranjanraj/fitsetup/config"
	"github.com/shashiranjanraj/fitsetup/database/seeders"
	"github.com/shashiranjanraj/fitsetup/pkg/database"
	"github.com/shashiranjanraj/fitsetup/pkg/storage"
	"github.com/shashiranjanraj/fitsetup/pkg/ws"
)

// withMongo runs fn against a connected database and tears the connection
// down afterwards.
func withMongo(fn func(ctx context.Context) error) error {
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		c, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = database.Disconnect(c)
	}()

	return fn(ctx)
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the admin account and a starter catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(func(ctx context.Context) error {
				if err := repositories.EnsureIndexes(ctx); err != nil {
					return err
				}
				return seeders.Run(ctx)
			})
		},
	}
}

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(repositories.EnsureIndexes)
		},
	}
}

func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "Print every named route",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMongo(func(ctx context.Context) error {
				storage.Connect()
				r := routes.Build(ws.NewHub())

				list := r.Routes()
				sort.Slice(list, func(i, j int) bool {
					if list[i].Path != list[j].Path {
						return list[i].Path < list[j].Path
					}
					return list[i].Method < list[j].Method
				})
				for _, info := range list {
					fmt.Printf("%-7s %-45s %s\n", info.Method, info.Path, info.Name)
				}
				return nil
			})
		},
	}
}
