package advisor

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/opnlabs/advisor/pkg/devops"
	"github.com/opnlabs/advisor/pkg/models"
	"github.com/spf13/cobra"
)

var statusColors = map[models.Status]*color.Color{
	models.StatusSucceeded: color.New(color.FgGreen),
	models.StatusFailed:    color.New(color.FgRed),
	models.StatusRunning:   color.New(color.FgYellow),
	models.StatusUnknown:   color.New(color.FgWhite),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known pipelines (mock data)",

	Run: func(cmd *cobra.Command, args []string) {
		pipelines, err := devops.NewMockProvider().List(context.Background())
		if err != nil {
			log.Fatal(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTATUS\tLAST RUN")
		for _, p := range pipelines {
			status := string(p.Status)
			if c, ok := statusColors[p.Status]; ok {
				status = c.Sprint(status)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, status, p.LastRun.Format("2006-01-02 15:04"))
		}
		w.Flush()
	},
}
