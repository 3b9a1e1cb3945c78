package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jayvanderwall/desim/config"
	"github.com/jayvanderwall/desim/examples/batchlink"
	"github.com/jayvanderwall/desim/examples/broadcast"
	"github.com/jayvanderwall/desim/examples/pingpong"
	"github.com/jayvanderwall/desim/examples/selfloop"
	"github.com/jayvanderwall/desim/examples/timerdemo"
	"github.com/jayvanderwall/desim/monitor"
	"github.com/jayvanderwall/desim/sim"
	"github.com/jayvanderwall/desim/trace"
)

var (
	runQuitTime    int64
	runConfigPath  string
	runMonitorPort int
	runOpenBrowser bool
	runCPUProfile  string
	runTracePath   string
	runLogLevel    string
)

var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run a built-in demo scenario to completion.",
	Long: `Run a built-in demo scenario to completion. Supported scenarios are ` +
		`selfloop, pingpong, broadcast, timerdemo, and batchlink.`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario,
}

func init() {
	runCmd.Flags().Int64Var(&runQuitTime, "quit-time", 0,
		"stop once current_time exceeds this value; 0 runs until quiescent")
	runCmd.Flags().StringVar(&runConfigPath, "config", "",
		"path to a YAML scenario config; overrides --quit-time if set")
	runCmd.Flags().IntVar(&runMonitorPort, "monitor-port", 0,
		"if nonzero, serve simulator status over HTTP on this port")
	runCmd.Flags().BoolVar(&runOpenBrowser, "open-browser", false,
		"open the monitor status page in a browser once it is serving")
	runCmd.Flags().StringVar(&runCPUProfile, "cpuprofile", "",
		"if set, write a CPU profile to this path for the run's duration")
	runCmd.Flags().StringVar(&runTracePath, "trace-path", "",
		"if set, record a SQLite trace of every hook invocation to this path with .sqlite3 appended")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info",
		"logrus level for tick/message logging: trace, debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(runLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	sim.Logger.SetLevel(level)

	quitTime := sim.SimulationTime(runQuitTime)
	monitorPort := runMonitorPort
	openBrowser := runOpenBrowser
	tracePath := runTracePath

	if runConfigPath != "" {
		scenario, err := config.Load(runConfigPath)
		if err != nil {
			return err
		}

		quitTime = scenario.QuitTimeAsSimulationTime()
		if scenario.Monitor.Enabled {
			monitorPort = scenario.Monitor.Port
			openBrowser = scenario.Monitor.OpenBrowser
		}
		if scenario.Trace.Enabled {
			tracePath = scenario.Trace.Path
		}
	}

	if runCPUProfile != "" {
		f, err := os.Create(runCPUProfile)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	s := sim.NewSimulator(quitTime)

	if level == logrus.DebugLevel || level == logrus.TraceLevel {
		s.AcceptHook(sim.NewTickLogger())
		s.AcceptHook(sim.NewMessageLogger())
	}

	components, err := buildScenario(args[0], s)
	if err != nil {
		return err
	}

	var recorder *trace.Recorder
	if tracePath != "" {
		recorder = trace.NewRecorder(tracePath)
		recorder.Init()
		defer recorder.Close()
		s.AcceptHook(recorder)
	}

	if monitorPort != 0 {
		m := monitor.New().WithPortNumber(monitorPort)
		if openBrowser {
			m = m.WithBrowserOpen()
		}
		m.RegisterSimulator(s)
		for _, c := range components {
			m.RegisterComponent(c)
		}
		m.StartServer()
	}

	if err := s.Run(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ran %q to completion at time %d\n",
		args[0], int64(s.CurrentTime()))

	return nil
}

func buildScenario(name string, s *sim.Simulator) ([]sim.Component, error) {
	switch name {
	case "selfloop":
		looper := selfloop.NewLooper("Looper")
		if err := s.Register(looper); err != nil {
			return nil, err
		}
		if err := sim.Connect(s, looper.Out, looper.In); err != nil {
			return nil, err
		}
		return []sim.Component{looper}, nil

	case "pingpong":
		sender := pingpong.NewSender("Sender", []pingpong.Send{
			{Msg: 1, ExtraDelay: 0},
			{Msg: 2, ExtraDelay: 5},
			{Msg: 3, ExtraDelay: 25},
		})
		receiver := pingpong.NewReceiver("Receiver")
		if err := s.Register(sender); err != nil {
			return nil, err
		}
		if err := s.Register(receiver); err != nil {
			return nil, err
		}
		if err := sim.Connect(s, sender.Out, receiver.In); err != nil {
			return nil, err
		}
		return []sim.Component{sender, receiver}, nil

	case "broadcast":
		sender := broadcast.NewSender("Sender", 7)
		r1 := broadcast.NewReceiver("Receiver1")
		r2 := broadcast.NewReceiver("Receiver2")
		if err := s.Register(sender); err != nil {
			return nil, err
		}
		if err := s.Register(r1); err != nil {
			return nil, err
		}
		if err := s.Register(r2); err != nil {
			return nil, err
		}
		if err := sim.ConnectBroadcast(s, sender.Out, r1.In); err != nil {
			return nil, err
		}
		if err := sim.ConnectBroadcast(s, sender.Out, r2.In); err != nil {
			return nil, err
		}
		return []sim.Component{sender, r1, r2}, nil

	case "timerdemo":
		clock := timerdemo.NewClock("Clock", []timerdemo.Scheduled{
			{Value: 1, Delay: 3},
			{Value: 2, Delay: 8},
			{Value: 3, Delay: 8},
		})
		if err := s.Register(clock); err != nil {
			return nil, err
		}
		return []sim.Component{clock}, nil

	case "batchlink":
		sender := batchlink.NewSender("Sender", []int{10, 20, 30, 40, 50})
		receiver := batchlink.NewReceiver("Receiver")
		if err := s.Register(sender); err != nil {
			return nil, err
		}
		if err := s.Register(receiver); err != nil {
			return nil, err
		}
		if err := sim.ConnectBatch(s, sender.Out, receiver.In); err != nil {
			return nil, err
		}
		return []sim.Component{sender, receiver}, nil

	default:
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
}
