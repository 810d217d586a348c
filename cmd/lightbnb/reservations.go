package main

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/spf13/cobra"
)

func newReservationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "Query reservations",
	}

	cmd.AddCommand(newReservationsListCmd())
	return cmd
}

func newReservationsListCmd() *cobra.Command {
	var (
		guestID int64
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a guest's past reservations with property details",
		Args:  cobra.NoArgs,
		RunE: withServices(func(ctx context.Context, cmd *cobra.Command, s *service.Services) error {
			reservations, err := s.Reservations.ListPast(ctx, guestID, limit)
			if err != nil {
				return err
			}
			return printResult(cmd, reservations)
		}),
	}

	cmd.Flags().Int64Var(&guestID, "guest-id", 0, "id of the guest")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of reservations (0 uses the configured default)")
	_ = cmd.MarkFlagRequired("guest-id")

	return cmd
}
