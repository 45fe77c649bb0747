package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucasmendes/plantao/internal/config"
	"github.com/lucasmendes/plantao/pkg/clients/gmailclient"
	"github.com/lucasmendes/plantao/pkg/core/model"
	"github.com/lucasmendes/plantao/pkg/core/services"
	"github.com/lucasmendes/plantao/pkg/db"
	"github.com/lucasmendes/plantao/pkg/notify"
	"github.com/lucasmendes/plantao/pkg/postgres"
	"github.com/lucasmendes/plantao/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	sink     notify.Sink
	logger   *zap.Logger
	ctx      context.Context
}

var (
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plantao",
		Short: "Plantão CLI - Manage weekend shift schedules",
		Long:  `A CLI tool for managing weekend shift rosters, automatic round-robin schedules and peer-to-peer shift swaps.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: plantao_config.yaml)")

	rootCmd.AddCommand(generateScheduleCmd())
	rootCmd.AddCommand(listRunsCmd())
	rootCmd.AddCommand(listShiftsCmd())
	rootCmd.AddCommand(addShiftCmd())
	rootCmd.AddCommand(deleteShiftCmd())
	rootCmd.AddCommand(reassignShiftCmd())
	rootCmd.AddCommand(proposeSwapCmd())
	rootCmd.AddCommand(acceptSwapCmd())
	rootCmd.AddCommand(rejectSwapCmd())
	rootCmd.AddCommand(cancelSwapCmd())
	rootCmd.AddCommand(listSwapsCmd())
	rootCmd.AddCommand(addPersonCmd())
	rootCmd.AddCommand(listPeopleCmd())
	rootCmd.AddCommand(deactivatePersonCmd())
	rootCmd.AddCommand(setQueueOrderCmd())
	rootCmd.AddCommand(notificationsCmd())
	rootCmd.AddCommand(markReadCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database and notification sinks
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Debug("Database ready")

	// In-app notifications always; email on top when configured
	sinks := []notify.Sink{notify.NewStoreSink(app.database)}
	if app.cfg.Email.Enabled {
		app.logger.Info("Initializing gmail client", zap.String("sender", app.cfg.Email.Sender))
		oauthCfg, err := config.LoadOAuthClient()
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		gmailClient, err := gmailclient.NewClient(app.ctx, oauthCfg, app.cfg.Email.Sender)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
		sinks = append(sinks, notify.NewEmailSink(gmailClient, app.database))
	}
	app.sink = notify.NewMultiSink(sinks...)

	app.logger.Info("Application initialized")

	return nil
}

// Command definitions

func generateScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule [weeks]",
		Short: "Generate a round-robin schedule (defaults to configured weeks)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks := app.cfg.Schedule.DefaultWeeks
			if len(args) > 0 {
				var err error
				weeks, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("weeks must be a number: %w", err)
				}
			}
			domain, _ := cmd.Flags().GetString("domain")
			start, _ := cmd.Flags().GetString("start")
			createdBy, _ := cmd.Flags().GetString("created-by")

			result, err := services.GenerateSchedule(app.ctx, app.database, app.logger, services.GenerateScheduleInput{
				Domain:    model.Domain(domain),
				StartDate: start,
				Weeks:     weeks,
				CreatedBy: createdBy,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule generated: %d assignments over %d weeks (run %s)\n\n",
				len(result.Assignments), result.Run.Weeks, result.Run.ID)
			for _, a := range result.Assignments {
				printShift(a)
			}
			return nil
		},
	}

	cmd.Flags().String("domain", string(model.DomainCollaborator), "Scheduling domain (colaborador or tecnico)")
	cmd.Flags().String("start", "", "Start Saturday (YYYY-MM-DD, default: next Saturday)")
	cmd.Flags().String("created-by", "", "Operator recorded on the schedule run")

	return cmd
}

func listRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listRuns",
		Short: "List past schedule generation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := services.ListScheduleRuns(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No schedule runs recorded.")
				return nil
			}

			for _, r := range runs {
				line := fmt.Sprintf("%s  %s  %-12s %d weeks from %s", r.CreatedAt, r.ID, r.Domain, r.Weeks, r.StartDate)
				if r.CreatedBy != "" {
					line += "  by " + r.CreatedBy
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func listShiftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listShifts",
		Short: "List shifts grouped by week (defaults to the next 4 weeks)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := shiftFilterFromFlags(cmd)

			weeks, err := services.ViewSchedule(app.ctx, app.database, app.logger, filter)
			if err != nil {
				return err
			}

			if len(weeks) == 0 {
				fmt.Println("No shifts found.")
				return nil
			}

			for _, week := range weeks {
				fmt.Printf("\nWeek %s - %s\n", week.Start.Format("2006-01-02"), week.End.Format("2006-01-02"))
				for _, a := range week.Shifts {
					printShift(a)
				}
			}
			fmt.Println()
			return nil
		},
	}

	addShiftFilterFlags(cmd)

	return cmd
}

func addShiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addShift <person_id> <date> <slot_type>",
		Short: "Register a shift manually",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			partner, _ := cmd.Flags().GetString("partner")
			notes, _ := cmd.Flags().GetString("notes")

			shift, err := services.AddShift(app.ctx, app.database, app.logger, services.AddShiftInput{
				PersonID:  args[0],
				PartnerID: partner,
				Date:      args[1],
				SlotType:  model.SlotType(args[2]),
				Notes:     notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Shift %s created:\n", shift.ID)
			printShift(*shift)
			return nil
		},
	}

	cmd.Flags().String("partner", "", "Second person for the paired technician slot")
	cmd.Flags().String("notes", "", "Free-form notes")

	return cmd
}

func deleteShiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deleteShift <shift_id>",
		Short: "Delete a shift assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteShift(app.ctx, app.database, app.logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("Shift %s deleted.\n", args[0])
			return nil
		},
	}
}

func reassignShiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reassignShift <shift_id> <person_id>",
		Short: "Move a shift to another person (admin correction)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.ReassignShift(app.ctx, app.database, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Shift %s reassigned to %s.\n", args[0], args[1])
			return nil
		},
	}
}

func proposeSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposeSwap <caller_id> <requester_shift_id> <target_shift_id>",
		Short: "Propose exchanging two shifts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, _ := cmd.Flags().GetString("message")

			request, err := services.ProposeSwap(app.ctx, app.database, app.sink, app.logger, services.ProposeSwapInput{
				CallerID:         args[0],
				RequesterShiftID: args[1],
				TargetShiftID:    args[2],
				Message:          message,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Swap request %s created (status %s).\n", request.ID, request.Status)
			return nil
		},
	}

	cmd.Flags().String("message", "", "Message shown to the target person")

	return cmd
}

func acceptSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "acceptSwap <swap_id> <caller_id>",
		Short: "Accept a pending swap (target person only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.AcceptSwap(app.ctx, app.database, app.sink, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Swap %s accepted - shifts exchanged.\n", args[0])
			return nil
		},
	}
}

func rejectSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rejectSwap <swap_id> <caller_id>",
		Short: "Reject a pending swap (target person only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RejectSwap(app.ctx, app.database, app.sink, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Swap %s rejected.\n", args[0])
			return nil
		},
	}
}

func cancelSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancelSwap <swap_id> <caller_id>",
		Short: "Cancel a pending swap (requester only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.CancelSwap(app.ctx, app.database, app.sink, app.logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Swap %s cancelled.\n", args[0])
			return nil
		},
	}
}

func listSwapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listSwaps <person_id>",
		Short: "List swap requests involving a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			swaps, err := services.ListSwaps(app.ctx, app.database, app.logger, args[0])
			if err != nil {
				return err
			}

			if len(swaps) == 0 {
				fmt.Println("No swap requests found.")
				return nil
			}

			fmt.Printf("\nFound %d swap requests:\n\n", len(swaps))
			for _, s := range swaps {
				fmt.Printf("- %s [%s] %s -> %s (shifts %s / %s)\n",
					s.ID, s.Status, s.RequesterID, s.TargetID, s.RequesterShiftID, s.TargetShiftID)
			}
			return nil
		},
	}
}

func addPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addPerson <full_name>",
		Short: "Register a rotation participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")

			input := services.RegisterPersonInput{
				FullName: args[0],
				Role:     model.Role(role),
				Email:    email,
				Phone:    phone,
			}
			if cmd.Flags().Changed("queue-order") {
				order, _ := cmd.Flags().GetInt("queue-order")
				input.QueueOrder = &order
			}

			person, err := services.RegisterPerson(app.ctx, app.database, app.logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("Person %s registered (queue position %d).\n", person.ID, person.QueueOrder)
			return nil
		},
	}

	cmd.Flags().String("role", string(model.RoleCollaborator), "Role (COLABORADOR, TECNICO or ADMIN)")
	cmd.Flags().String("email", "", "Email for notifications")
	cmd.Flags().String("phone", "", "Contact phone")
	cmd.Flags().Int("queue-order", 0, "Explicit queue position (default: back of the queue)")

	return cmd
}

func listPeopleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listPeople",
		Short: "List rotation participants in queue order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")

			people, err := services.ListPeople(app.ctx, app.database, app.logger, model.Role(role))
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d people:\n\n", len(people))
			for _, p := range people {
				status := "active"
				if !p.Active {
					status = "inactive"
				}
				fmt.Printf("%3d. %s (%s) - %s - %s\n", p.QueueOrder, p.FullName, p.ID, p.Role, status)
			}
			return nil
		},
	}

	cmd.Flags().String("role", "", "Restrict to one role")

	return cmd
}

func deactivatePersonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivatePerson <person_id>",
		Short: "Remove a person from rotation, keeping their history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeactivatePerson(app.ctx, app.database, app.logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("Person %s deactivated.\n", args[0])
			return nil
		},
	}
}

func setQueueOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setQueueOrder <person_id> <order>",
		Short: "Change a person's position in the rotation queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("order must be a number: %w", err)
			}
			if err := services.UpdateQueueOrder(app.ctx, app.database, app.logger, args[0], order); err != nil {
				return err
			}
			fmt.Printf("Queue order of %s set to %d.\n", args[0], order)
			return nil
		},
	}
}

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications <person_id>",
		Short: "List a person's in-app notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unread, _ := cmd.Flags().GetBool("unread")

			notifications, err := services.ListNotifications(app.ctx, app.database, app.logger, args[0], unread)
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Println("No notifications.")
				return nil
			}

			for _, n := range notifications {
				marker := " "
				if !n.Read {
					marker = "*"
				}
				fmt.Printf("%s [%s] %s - %s (%s)\n", marker, n.Kind, n.Title, n.Body, n.ID)
			}
			return nil
		},
	}

	cmd.Flags().Bool("unread", false, "Only unread notifications")

	return cmd
}

func markReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markRead <notification_id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.MarkNotificationRead(app.ctx, app.database, app.logger, args[0]); err != nil {
				return err
			}
			fmt.Println("Notification marked as read.")
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print report-ready schedule rows for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := shiftFilterFromFlags(cmd)

			rows, err := services.ExportSchedule(app.ctx, app.database, app.logger, filter)
			if err != nil {
				return err
			}

			for _, r := range rows {
				line := fmt.Sprintf("%s  %s  %-15s %s-%s  %s", r.Date, r.Weekday, r.SlotType, r.StartTime, r.EndTime, r.PersonName)
				if r.PartnerName != "" {
					line += " / " + r.PartnerName
				}
				if r.Notes != "" {
					line += "  (" + r.Notes + ")"
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	addShiftFilterFlags(cmd)

	return cmd
}

// addShiftFilterFlags registers the shared shift filtering flags
func addShiftFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("person", "", "Filter by person ID")
	cmd.Flags().String("weekday", "", "Filter by weekday (SAB or DOM)")
	cmd.Flags().String("domain", "", "Filter by domain (colaborador or tecnico)")
}

// shiftFilterFromFlags builds a store filter from the shared flags
func shiftFilterFromFlags(cmd *cobra.Command) db.ShiftFilter {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	person, _ := cmd.Flags().GetString("person")
	weekday, _ := cmd.Flags().GetString("weekday")
	domain, _ := cmd.Flags().GetString("domain")

	filter := db.ShiftFilter{
		From:     from,
		To:       to,
		PersonID: person,
		Weekday:  weekday,
	}
	if model.Domain(domain) == model.DomainCollaborator {
		for _, slot := range model.CollaboratorSlots() {
			filter.SlotTypes = append(filter.SlotTypes, string(slot))
		}
	} else if model.Domain(domain) == model.DomainTechnician {
		for _, slot := range model.TechnicianSlots() {
			filter.SlotTypes = append(filter.SlotTypes, string(slot))
		}
	}
	return filter
}

// printShift writes one shift line to stdout
func printShift(a db.ShiftAssignment) {
	line := fmt.Sprintf("  %s %s  %-15s %s-%s  %s", a.ShiftDate, a.Weekday, a.SlotType, a.StartTime, a.EndTime, a.PersonID)
	if a.PartnerID != "" {
		line += " / " + a.PartnerID
	}
	fmt.Println(line)
}
