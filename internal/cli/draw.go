package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"secretsanta/internal/domain"
)

// drawFile is the participants file read by the draw command.
type drawFile struct {
	Date         string                   `yaml:"date"`
	Budget       string                   `yaml:"budget"`
	Participants []domain.ParticipantSlot `yaml:"participants"`
}

func newDrawCommand(d deps) *cobra.Command {
	var (
		file   string
		date   string
		budget string
	)
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Run one draw from a participants file and email everyone",
		Long: `Run one draw from a YAML participants file and email every participant.

The file lists the slots in order; empty slots are skipped:

  date: 12/24/2024
  budget: "50"
  participants:
    - name: Alice
      email: alice@example.com
      gift: Book
    - name: Bob
      email: bob@example.com
      gift: Socks

--date and --budget override the values in the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read participants file: %w", err)
			}
			var in drawFile
			if err := yaml.Unmarshal(raw, &in); err != nil {
				return fmt.Errorf("parse participants file: %w", err)
			}
			if cmd.Flags().Changed("date") {
				in.Date = date
			}
			if cmd.Flags().Changed("budget") {
				in.Budget = budget
			}

			cfg, err := d.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			mailer, err := d.newMailer(mailerConfig(cfg))
			if err != nil {
				return fmt.Errorf("create mailer: %w", err)
			}
			logger := d.newLogger(cmd.ErrOrStderr())
			svc := newDrawService(cfg, mailer, nil, nil, logger)

			result, err := svc.Draw(cmd.Context(), domain.DrawRequest{
				Slots:     in.Participants,
				RawDate:   in.Date,
				RawBudget: in.Budget,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invitations sent. (run %s, %d participants)\n", result.RunID, result.Notified)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "participants YAML file")
	cmd.Flags().StringVar(&date, "date", "", "gift exchange date, mm/dd/yyyy")
	cmd.Flags().StringVar(&budget, "budget", "", "budget per gift, whole number")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
