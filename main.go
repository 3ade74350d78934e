// tally is a launcher-style personal time tracker: free text starts a
// task, an empty query stops the running ones or opens a summary.
package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bkemper/tally/internal/config"
	"github.com/bkemper/tally/internal/query"
	"github.com/bkemper/tally/internal/store"
	"github.com/bkemper/tally/internal/tui"
)

var version = "dev"

func main() {
	var (
		configPath string
		dataPath   string
	)

	newService := func() (*query.Service, string, error) {
		cfgPath := configPath
		if cfgPath == "" {
			var err error
			cfgPath, err = config.DefaultConfigPath()
			if err != nil {
				return nil, "", err
			}
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, "", err
		}
		if dataPath != "" {
			cfg.DataPath = dataPath
		}
		resolved, err := cfg.ResolveDataPath()
		if err != nil {
			return nil, "", err
		}
		return query.NewService(store.New(resolved), cfg), cfgPath, nil
	}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Track time on named tasks from a launcher-style prompt",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfgPath, err := newService()
			if err != nil {
				return err
			}
			p := tea.NewProgram(tui.NewApp(svc, cfgPath), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/tally/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "data file (default ~/.config/tally/data.json)")

	startCmd := &cobra.Command{
		Use:   "start <name>",
		Short: "Start a task, stopping any running ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			result, err := svc.Start(args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Println(query.Notification(result.Stopped, result.Started))
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop all running tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			stopped, err := svc.Stop(time.Now())
			if err != nil {
				return err
			}
			if len(stopped) == 0 {
				fmt.Println("Nothing is running.")
				return nil
			}
			fmt.Println(query.Notification(stopped, ""))
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the currently running tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			running, err := svc.RunningTaskNames()
			if err != nil {
				return err
			}
			if len(running) == 0 {
				fmt.Println("Nothing is running.")
				return nil
			}
			for _, name := range running {
				fmt.Println("● " + name)
			}
			return nil
		},
	}

	var exportFormat string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the summary report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			path, err := svc.Export(exportFormat)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "csv, markdown or html (default: configured format)")

	rootCmd.AddCommand(startCmd, stopCmd, statusCmd, exportCmd)
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
