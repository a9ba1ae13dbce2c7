// Command framesim drives a framesched scheduler from a simulated render
// loop and reports how the tick budget held up.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Andrej220/go-utils/framesched/internal/config"
	"github.com/Andrej220/go-utils/framesched/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "framesim",
		Short:         "Simulate a render loop driving a frame-budgeted job scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand())
	return root
}

func newRunCommand() *cobra.Command {
	var (
		configFile string
		frames     int
		renderFPS  int
		loadingFPS int
		queue      string
		pinCPU     int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the jobs described by a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("frames") {
				cfg.Frames = frames
			}
			if flags.Changed("render-fps") {
				cfg.RenderFramerate = renderFPS
			}
			if flags.Changed("loading-fps") {
				cfg.LoadingFramerate = loadingFPS
			}
			if flags.Changed("queue") {
				cfg.Queue = queue
			}
			if flags.Changed("pin-cpu") {
				cfg.PinCPU = pinCPU
			}

			rep, err := sim.Run(cmd.Context(), cfg)
			if _, werr := rep.WriteTo(cmd.OutOrStdout()); werr != nil && err == nil {
				err = werr
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.Flags().IntVar(&frames, "frames", 0, "maximum number of frames, 0 runs until idle")
	cmd.Flags().IntVar(&renderFPS, "render-fps", 60, "render loop framerate")
	cmd.Flags().IntVar(&loadingFPS, "loading-fps", 30, "scheduler loading framerate")
	cmd.Flags().StringVar(&queue, "queue", "scan", "selection strategy: scan or heap")
	cmd.Flags().IntVar(&pinCPU, "pin-cpu", -1, "pin the frame loop to a cpu, -1 disables")
	return cmd
}
