package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/TheusHen/icefast/icefast"
	"github.com/TheusHen/icefast/icefast/config"
	"github.com/TheusHen/icefast/icefast/ice"
	"github.com/TheusHen/icefast/icefast/log"
	"github.com/TheusHen/icefast/icefast/stream"
)

// default output of the commands; logs go to logOutput.
var (
	output    io.Writer = os.Stdout
	input     io.Reader = os.Stdin
	logOutput io.Writer = os.Stderr
)

// Automatically set through -ldflags
// Example: go install -ldflags "-X main.version=`git describe --tags` -X main.gitCommit=`git rev-parse HEAD`"
var (
	version   = icefast.Version
	gitCommit = "none"
)

var verboseFlag = &cli.BoolFlag{
	Name:    "verbose",
	Usage:   "If set, verbosity is at the debug level",
	EnvVars: []string{"ICEFAST_VERBOSE"},
}

var jsonLogsFlag = &cli.BoolFlag{
	Name:    "json-logs",
	Usage:   "Emit logs as JSON instead of console lines",
	EnvVars: []string{"ICEFAST_JSON_LOGS"},
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "TOML profile holding the level, key source and stream settings.",
	EnvVars: []string{"ICEFAST_CONFIG"},
}

var inFlag = &cli.StringFlag{
	Name:  "in",
	Usage: "Input file (default: stdin)",
}

var outFlag = &cli.StringFlag{
	Name:  "out",
	Usage: "Output file (default: stdout)",
}

var levelFlag = &cli.IntFlag{
	Name:    "level",
	Usage:   "Cipher level: 0 for thin ICE, n >= 1 for 16n rounds and an 8n byte key",
	Value:   1,
	EnvVars: []string{"ICEFAST_LEVEL"},
}

var keyFlag = &cli.StringFlag{
	Name:    "key",
	Usage:   "Hex encoded key of exactly 8 bytes per level (thin uses 8)",
	EnvVars: []string{"ICEFAST_KEY"},
}

var secretFlag = &cli.StringFlag{
	Name:    "secret",
	Usage:   "Derive the key from this secret with HKDF-SHA256",
	EnvVars: []string{"ICEFAST_SECRET"},
}

var saltFlag = &cli.StringFlag{
	Name:    "salt",
	Usage:   "Optional HKDF salt, only valid with --secret",
	EnvVars: []string{"ICEFAST_SALT"},
}

var gameVersionFlag = &cli.UintFlag{
	Name:  "game-version",
	Usage: "Use the level-2 key derived from a CS:GO client version (implies --level 2)",
}

var workersFlag = &cli.IntFlag{
	Name:    "workers",
	Usage:   "Parallel workers per chunk (0 = number of CPUs)",
	EnvVars: []string{"ICEFAST_WORKERS"},
}

var chunkSizeFlag = &cli.IntFlag{
	Name:  "chunk-size",
	Usage: "Bytes transformed per call, rounded down to a multiple of 16",
	Value: stream.DefaultChunkSize,
}

var passthroughFlag = &cli.BoolFlag{
	Name:  "passthrough-tail",
	Usage: "Copy a trailing partial block unchanged instead of failing",
}

var saveFlag = &cli.StringFlag{
	Name:  "save",
	Usage: "Also write a profile holding the generated key to this path",
}

var transformFlags = []cli.Flag{
	inFlag, outFlag, levelFlag, keyFlag, secretFlag, saltFlag, gameVersionFlag,
	workersFlag, chunkSizeFlag, passthroughFlag,
}

var appCommands = []*cli.Command{
	{
		Name:   "encrypt",
		Usage:  "Encrypt a file or stdin.",
		Flags:  transformFlags,
		Action: transformCmd(stream.Encrypt),
	},
	{
		Name:   "decrypt",
		Usage:  "Decrypt a file or stdin.",
		Flags:  transformFlags,
		Action: transformCmd(stream.Decrypt),
	},
	{
		Name:   "vectors",
		Usage:  "Check the cipher against its known-answer vectors.",
		Action: vectorsCmd,
	},
	{
		Name:   "keygen",
		Usage:  "Print a random hex key for the given level.",
		Flags:  []cli.Flag{levelFlag, saveFlag},
		Action: keygenCmd,
	},
}

// CLI runs the icefast app
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "icefast"
	app.Version = version
	app.Usage = "ICE block cipher toolkit"
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(output, "icefast %v (commit %v)\n", version, gitCommit)
	}
	app.ExitErrHandler = func(context *cli.Context, err error) {
		// main reports errors; tests run several commands in one process.
	}
	app.Writer = output
	app.Commands = appCommands
	app.Flags = []cli.Flag{verboseFlag, jsonLogsFlag, configFlag}
	app.Before = setupLogger
	return app
}

func setupLogger(c *cli.Context) error {
	level := log.InfoLevel
	if c.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	l := log.New(zapcore.AddSync(logOutput), level, c.Bool(jsonLogsFlag.Name))
	c.Context = log.ToContext(c.Context, l)
	return nil
}

// contextToProfile loads the --config profile, if any, and applies the flags
// set on the command line on top of it.
func contextToProfile(c *cli.Context) (*config.Profile, error) {
	p := config.Default()
	if path := c.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	if c.IsSet(levelFlag.Name) {
		p.Level = c.Int(levelFlag.Name)
	}
	// a key source given on the command line replaces the profile's
	if c.IsSet(keyFlag.Name) || c.IsSet(secretFlag.Name) || c.IsSet(gameVersionFlag.Name) {
		p.Key = c.String(keyFlag.Name)
		p.Secret = c.String(secretFlag.Name)
		p.Salt = c.String(saltFlag.Name)
		p.GameVersion = nil
		if c.IsSet(gameVersionFlag.Name) {
			p.GameVersion = config.Version(uint32(c.Uint(gameVersionFlag.Name)))
		}
		if p.GameVersion != nil && !c.IsSet(levelFlag.Name) {
			p.Level = 2
		}
	} else if c.IsSet(saltFlag.Name) {
		p.Salt = c.String(saltFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		p.Workers = c.Int(workersFlag.Name)
	}
	if c.IsSet(chunkSizeFlag.Name) {
		p.ChunkSize = c.Int(chunkSizeFlag.Name)
	}
	if c.IsSet(passthroughFlag.Name) {
		p.PassthroughTail = c.Bool(passthroughFlag.Name)
	}
	return p, p.Validate()
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return input, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func transformCmd(dir stream.Direction) cli.ActionFunc {
	return func(c *cli.Context) error {
		l := log.FromContextOrDefault(c.Context).Named(dir.String())
		defer l.Sync() //nolint:errcheck

		p, err := contextToProfile(c)
		if err != nil {
			return err
		}
		ciph, err := p.Cipher()
		if err != nil {
			return err
		}
		in, closeIn, err := openInput(c.String(inFlag.Name))
		if err != nil {
			return err
		}
		defer closeIn() //nolint:errcheck

		outPath := c.String(outFlag.Name)
		var out io.Writer = output
		var outFile *os.File
		if outPath != "" && outPath != "-" {
			outFile, err = os.Create(outPath)
			if err != nil {
				return err
			}
			out = outFile
		}

		start := time.Now()
		l.Debugw("starting", "level", ciph.Level().String(), "rounds", ciph.Rounds(),
			"chunk_size", p.StreamConfig().ChunkSize, "workers", p.Workers)

		w := stream.NewWriter(out, ciph, dir, p.StreamConfig())
		_, err = io.Copy(w, in)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if outFile != nil {
			if cerr := outFile.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(outPath)
			}
		}
		if err != nil {
			if errors.Is(err, ice.ErrAlignment) {
				l.Errorw("input is not a whole number of blocks", "hint", "use --passthrough-tail")
			}
			return fmt.Errorf("%s: %w", dir, err)
		}

		stats := w.Stats()
		if tail := stats.TailBytes.Load(); tail > 0 {
			l.Warnw("trailing bytes copied unchanged", "bytes", tail)
		}
		l.Infow("done",
			"level", ciph.Level().String(),
			"bytes", stats.Bytes.Load(),
			"chunks", stats.Chunks.Load(),
			"took", time.Since(start))
		return nil
	}
}

func keygenCmd(c *cli.Context) error {
	level := ice.Level(c.Int(levelFlag.Name))
	if level < 0 || int(level) > config.MaxLevel {
		return fmt.Errorf("%w: %d", ice.ErrLevel, int(level))
	}
	key := make([]byte, level.KeySize())
	if _, err := rand.Read(key); err != nil {
		return err
	}
	encoded := hex.EncodeToString(key)
	fmt.Fprintln(output, encoded)

	if path := c.String(saveFlag.Name); path != "" {
		p := config.Default()
		p.Level = int(level)
		p.Key = encoded
		if err := p.Save(path); err != nil {
			return err
		}
		log.FromContextOrDefault(c.Context).Infow("profile written", "path", path, "level", level.String())
	}
	return nil
}
