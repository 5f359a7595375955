package cli

import (
	"fmt"
	"sort"

	"portfolio-contact/internal/delivery/cli/response"
	"portfolio-contact/pkg/apperror"

	"github.com/spf13/cobra"
)

func newDoctorCommand(deps CommandDeps) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report whether the contact relay is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := deps.Health.Check(cmd.Context())
			healthy := report["status"] == "ok"
			w := cmd.OutOrStdout()

			if asJSON {
				if healthy {
					return response.Success(w, "Contact relay operational", report, "")
				}
				if err := response.Error(w, "Contact relay not fully configured", report, ""); err != nil {
					return err
				}
			} else {
				keys := make([]string, 0, len(report))
				for k := range report {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(w, "%-21s %s\n", k+":", report[k])
				}
			}

			if !healthy {
				return apperror.Configuration("contact relay is not fully configured")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
