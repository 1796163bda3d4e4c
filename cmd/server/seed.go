package main

import (
	"errors"
	"fmt"

	"github.com/risegum/internal/config"
	"github.com/risegum/internal/db"
	"github.com/risegum/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	seedNames  = []string{"Aarav Sharma", "Diya Patel", "Kabir Singh", "Ananya Iyer", "Rohan Mehta", "Ishita Das", "Vihaan Reddy", "Saanvi Nair"}
	seedCities = []string{"Mumbai", "Bengaluru", "Delhi", "Pune", "Hyderabad", "Chennai", "Kolkata", "Ahmedabad"}
)

// 测试数据生成器：向本地库写入演示用的候补记录
func newSeedCommand(v *viper.Viper) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo waitlist entries into the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(v)
			if err := db.Init(cfg.DatabasePath); err != nil {
				return fmt.Errorf("initialize database: %w", err)
			}

			created, skipped, err := seedWaitlist(cmd, service.NewWaitlistService(db.DB), count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries, %d already present\n", created, skipped)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", len(seedNames), "number of entries to create")
	return cmd
}

func seedWaitlist(cmd *cobra.Command, svc *service.WaitlistService, count int) (created, skipped int, err error) {
	for i := 0; i < count; i++ {
		name := seedNames[i%len(seedNames)]
		input := service.WaitlistInput{
			Name:  name,
			Email: fmt.Sprintf("demo%03d@risegum.test", i+1),
			City:  seedCities[i%len(seedCities)],
		}
		if _, err := svc.Join(cmd.Context(), input); err != nil {
			if errors.Is(err, service.ErrDuplicateEmail) {
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("seed %s: %w", input.Email, err)
		}
		created++
	}
	return created, skipped, nil
}
