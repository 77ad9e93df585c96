package main

import (
	"context"
	"fmt"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

const serviceName = "YGOCatalog"

// serverProgram implements service.Interface around serve.
type serverProgram struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start implements service.Interface. It must not block.
func (p *serverProgram) Start(s service.Service) error {
	logger.Info("Starting catalog service")
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		if err := serve(ctx); err != nil {
			logger.Error("Catalog service failed", "error", err)
		}
	}()
	return nil
}

// Stop implements service.Interface.
func (p *serverProgram) Stop(s service.Service) error {
	logger.Info("Stopping catalog service")
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
	return nil
}

func serviceConfig() *service.Config {
	args := []string{"service", "run"}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	return &service.Config{
		Name:        serviceName,
		DisplayName: "YGO Catalog",
		Description: "Serves the Yu-Gi-Oh! card catalog over HTTP and WebSocket",
		Arguments:   args,
	}
}

func newService() (service.Service, *service.Config, error) {
	svcConfig := serviceConfig()
	s, err := service.New(&serverProgram{}, svcConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create service: %w", err)
	}
	return s, svcConfig, nil
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the catalog server as a system service",
}

// serviceAction builds a subcommand that applies action to the service.
func serviceAction(use, short, done string, action func(service.Service) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := newService()
			if err != nil {
				return err
			}
			if err := action(s); err != nil {
				return fmt.Errorf("failed to %s service: %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Service %s\n", done)
			return nil
		},
	}
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the server as a system service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := newService()
		if err != nil {
			return err
		}
		if err := s.Install(); err != nil {
			return fmt.Errorf("failed to install service: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✓ Service installed successfully")
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Start the service: ygo-catalog service start")
		fmt.Fprintln(out, "  2. Verify it's running: ygo-catalog service status")
		fmt.Fprintln(out, "  3. View logs:")
		switch service.Platform() {
		case "darwin-launchd":
			fmt.Fprintf(out, "     tail -f ~/Library/Logs/%s.log\n", serviceName)
		case "windows-service":
			fmt.Fprintln(out, "     Check Event Viewer")
		default:
			fmt.Fprintf(out, "     journalctl -u %s -f\n", serviceName)
		}
		return nil
	},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the service status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, svcConfig, err := newService()
		if err != nil {
			return err
		}
		status, err := s.Status()
		if err != nil {
			return fmt.Errorf("failed to get service status: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Service Status:")
		switch status {
		case service.StatusRunning:
			fmt.Fprintln(out, "  Status: ✓ Running")
		case service.StatusStopped:
			fmt.Fprintln(out, "  Status: ● Stopped")
		default:
			fmt.Fprintln(out, "  Status: ? Unknown")
		}
		fmt.Fprintln(out, "\nService Details:")
		fmt.Fprintf(out, "  Name: %s\n", svcConfig.Name)
		fmt.Fprintf(out, "  Display Name: %s\n", svcConfig.DisplayName)
		fmt.Fprintf(out, "  Arguments: %v\n", svcConfig.Arguments)
		return nil
	},
}

// serviceRunCmd is what the service manager executes.
var serviceRunCmd = &cobra.Command{
	Use:    "run",
	Short:  "Run under the service manager",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := newService()
		if err != nil {
			return err
		}
		return s.Run()
	},
}

func init() {
	serviceCmd.AddCommand(
		serviceInstallCmd,
		serviceAction("uninstall", "Uninstall the system service", "uninstalled", service.Service.Uninstall),
		serviceAction("start", "Start the system service", "started", service.Service.Start),
		serviceAction("stop", "Stop the system service", "stopped", service.Service.Stop),
		serviceAction("restart", "Restart the system service", "restarted", service.Service.Restart),
		serviceStatusCmd,
		serviceRunCmd,
	)
}
