// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/abiosoft/ishell"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console [command...]",
	Short: "Interactive command console",
	Long: `Opens an interactive console speaking the module's command vocabulary
over a single connection, so selections and settings persist between
commands. With arguments it runs one console command and exits:

  phonostat console play 3
  phonostat console status

Inside the console, "help" lists the commands.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, conn, connInfo, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		shell := newConsoleShell(dev)
		if len(args) > 0 {
			return shell.Process(args...)
		}

		shell.Println("Phonostat console. Connected: " + connInfo)
		shell.Println(`Type "help" for commands, "exit" to leave.`)
		shell.Run()
		return nil
	},
}

func newConsoleShell(dev *dysv19t.Device) *ishell.Shell {
	shell := ishell.New()
	shell.SetPrompt("phonostat> ")

	cmd := func(name, help string, aliases []string, fn func(c *ishell.Context) error) {
		shell.AddCmd(&ishell.Cmd{
			Name:    name,
			Help:    help,
			Aliases: aliases,
			Func: func(c *ishell.Context) {
				if err := fn(c); err != nil {
					c.Err(err)
				}
			},
		})
	}

	cmd("play", "play [track] - start or resume playback", []string{"p"}, func(c *ishell.Context) error {
		switch len(c.Args) {
		case 0:
			return dev.Play()
		case 1:
			track, err := parseTrack(c.Args[0])
			if err != nil {
				return err
			}
			return dev.PlayTrack(track)
		}
		return fmt.Errorf("usage: play [track]")
	})

	cmd("pause", "pause - pause playback", nil, func(c *ishell.Context) error {
		return dev.Pause()
	})

	cmd("stop", "stop - stop playback", nil, func(c *ishell.Context) error {
		return dev.Stop()
	})

	cmd("prev", "prev - previous track", nil, func(c *ishell.Context) error {
		return dev.PrevTrack()
	})

	cmd("next", "next - next track", nil, func(c *ishell.Context) error {
		return dev.NextTrack()
	})

	cmd("select", "select <track> - preselect without playing", []string{"sel"}, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: select <track>")
		}
		track, err := parseTrack(c.Args[0])
		if err != nil {
			return err
		}
		return dev.SelectTrack(track)
	})

	cmd("path", "path <disk> <path> - play a file or folder by path", nil, func(c *ishell.Context) error {
		if len(c.Args) != 2 {
			return fmt.Errorf("usage: path <disk> <path>")
		}
		disk, err := parseDisk(c.Args[0])
		if err != nil {
			return err
		}
		return dev.PlayPath(disk, c.Args[1])
	})

	cmd("insert", "insert track <disk> <n> | path <disk> <p> | done", nil, func(c *ishell.Context) error {
		if len(c.Args) == 0 {
			return fmt.Errorf("usage: insert track|path|done ...")
		}
		switch c.Args[0] {
		case "track":
			if len(c.Args) != 3 {
				return fmt.Errorf("usage: insert track <disk> <track>")
			}
			disk, err := parseDisk(c.Args[1])
			if err != nil {
				return err
			}
			track, err := parseTrack(c.Args[2])
			if err != nil {
				return err
			}
			return dev.InsertTrack(disk, track)
		case "path":
			if len(c.Args) != 3 {
				return fmt.Errorf("usage: insert path <disk> <path>")
			}
			disk, err := parseDisk(c.Args[1])
			if err != nil {
				return err
			}
			return dev.InsertPath(disk, c.Args[2])
		case "done":
			return dev.EndInsert()
		}
		return fmt.Errorf("usage: insert track|path|done ...")
	})

	cmd("volume", "volume <level|up|down> - set or step the volume", []string{"vol"}, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: volume <level|up|down>")
		}
		switch c.Args[0] {
		case "up":
			return dev.VolumeUp()
		case "down":
			return dev.VolumeDown()
		}
		level, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return fmt.Errorf("invalid volume %q", c.Args[0])
		}
		return dev.SetVolume(level)
	})

	cmd("mode", "mode <name> - set the play mode", nil, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: mode <name>")
		}
		mode, err := parsePlayMode(c.Args[0])
		if err != nil {
			return err
		}
		return dev.SetPlayMode(mode)
	})

	cmd("loop", "loop <count> - set the loop count", nil, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: loop <count>")
		}
		count, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return fmt.Errorf("invalid loop count %q", c.Args[0])
		}
		return dev.SetLoopCount(count)
	})

	cmd("eq", "eq <preset> - set the equalizer preset", nil, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: eq <preset>")
		}
		eq, err := parseEQ(c.Args[0])
		if err != nil {
			return err
		}
		return dev.SetEQ(eq)
	})

	cmd("channel", "channel <mp3|aux|mp3+aux> - set the DAC channel", nil, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: channel <name>")
		}
		ch, err := parseChannel(c.Args[0])
		if err != nil {
			return err
		}
		return dev.SetChannel(ch)
	})

	cmd("seek", "seek <+seconds|-seconds> - seek within the track", nil, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: seek <+seconds|-seconds>")
		}
		arg := c.Args[0]
		backward := strings.HasPrefix(arg, "-")
		arg = strings.TrimPrefix(strings.TrimPrefix(arg, "+"), "-")
		seconds, err := strconv.Atoi(arg)
		if err != nil || seconds < 0 {
			return fmt.Errorf("invalid seek offset %q", c.Args[0])
		}
		if backward {
			return dev.SeekBackward(seconds)
		}
		return dev.SeekForward(seconds)
	})

	cmd("repeat", "repeat <mm:ss> <mm:ss> | repeat end - A-B repeat", nil, func(c *ishell.Context) error {
		if len(c.Args) == 1 && c.Args[0] == "end" {
			return dev.EndRepeat()
		}
		if len(c.Args) != 2 {
			return fmt.Errorf("usage: repeat <start> <end> | repeat end")
		}
		startMin, startSec, err := parseClock(c.Args[0])
		if err != nil {
			return err
		}
		endMin, endSec, err := parseClock(c.Args[1])
		if err != nil {
			return err
		}
		return dev.RepeatRange(startMin, startSec, endMin, endSec)
	})

	cmd("combo", "combo <name>... | combo end - combination playback", nil, func(c *ishell.Context) error {
		if len(c.Args) == 0 {
			return fmt.Errorf("usage: combo <name>... | combo end")
		}
		if len(c.Args) == 1 && c.Args[0] == "end" {
			return dev.EndCombination()
		}
		return dev.StartCombination(c.Args)
	})

	cmd("times", "times <on|off> - elapsed-time reports", nil, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: times <on|off>")
		}
		switch c.Args[0] {
		case "on":
			return dev.StartTimeReports()
		case "off":
			return dev.StopTimeReports()
		}
		return fmt.Errorf("usage: times <on|off>")
	})

	cmd("status", "status - query all status fields", nil, func(c *ishell.Context) error {
		fields := []struct{ label, field string }{
			{"Play state", "state"},
			{"Online disks", "disks"},
			{"Current disk", "disk"},
			{"Track count", "tracks"},
			{"Current track", "track"},
			{"Track name", "name"},
			{"Play time", "time"},
		}
		for _, f := range fields {
			value, ok, err := queryField(dev, f.field)
			if err != nil {
				return err
			}
			if !ok {
				value = "no reply"
			}
			c.Printf("%-14s %s\n", f.label+":", value)
		}
		return nil
	})

	cmd("query", "query <field> - one status field", []string{"q"}, func(c *ishell.Context) error {
		if len(c.Args) != 1 {
			return fmt.Errorf("usage: query <field>")
		}
		value, ok, err := queryField(dev, strings.ToLower(c.Args[0]))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no reply")
		}
		c.Println(value)
		return nil
	})

	return shell
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
