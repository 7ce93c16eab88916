package runner

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/urfave/cli/v2"
)

// Options are the resolved run command flags.
type Options struct {
	Tags          string
	Browser       string
	Headless      bool
	Environment   string
	Parallel      int
	Run           string
	Verbose       bool
	StopOnFailure bool
	DryRun        bool
	Format        string
}

// NewApp builds the suite runner CLI.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "shop_automation",
		Usage: "browser test suite runner for the demo e-commerce application",
		Commands: []*cli.Command{
			runCommand(),
			setupEnvCommand(),
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run the end-to-end suite",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "scenario tags to run (e.g. smoke, regression)"},
			&cli.StringFlag{Name: "browser", Aliases: []string{"b"}, Value: "chrome", Usage: "browser to use (chrome, firefox, edge)"},
			&cli.BoolFlag{Name: "headless", Usage: "run the browser headless"},
			&cli.StringFlag{Name: "environment", Aliases: []string{"e"}, Value: "staging", Usage: "environment to test against"},
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Value: 1, Usage: "number of parallel test processes"},
			&cli.StringFlag{Name: "run", Aliases: []string{"f"}, Usage: "regexp selecting specific tests"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "verbose output"},
			&cli.BoolFlag{Name: "stop-on-failure", Usage: "stop on first failure"},
			&cli.BoolFlag{Name: "dry-run", Usage: "print the test command without executing it"},
			&cli.StringFlag{Name: "format", Value: "pretty", Usage: "output format (pretty, json)"},
		},
		Action: func(c *cli.Context) error {
			opts := Options{
				Tags:          c.String("tags"),
				Browser:       c.String("browser"),
				Headless:      c.Bool("headless"),
				Environment:   c.String("environment"),
				Parallel:      c.Int("parallel"),
				Run:           c.String("run"),
				Verbose:       c.Bool("verbose"),
				StopOnFailure: c.Bool("stop-on-failure"),
				DryRun:        c.Bool("dry-run"),
				Format:        c.String("format"),
			}
			return runSuite(opts)
		},
	}
}

// BuildTestArgs translates runner options into go test arguments.
func BuildTestArgs(opts Options) []string {
	args := []string{"test", "./e2e/...", "-count=1"}

	if opts.Verbose || opts.Format == "pretty" {
		args = append(args, "-v")
	}
	if opts.Format == "json" {
		args = append(args, "-json")
	}
	if opts.Run != "" {
		args = append(args, "-run", opts.Run)
	}
	if opts.Parallel > 1 {
		args = append(args, "-parallel", strconv.Itoa(opts.Parallel))
	}
	if opts.StopOnFailure {
		args = append(args, "-failfast")
	}
	return args
}

// BuildTestEnv translates runner options into suite environment variables.
func BuildTestEnv(opts Options) []string {
	env := []string{"E2E=1"}
	if opts.Browser != "" {
		env = append(env, "BROWSER="+opts.Browser)
	}
	if opts.Headless {
		env = append(env, "HEADLESS=true")
	}
	if opts.Environment != "" {
		env = append(env, "ENVIRONMENT="+opts.Environment)
	}
	if opts.Tags != "" {
		env = append(env, "E2E_TAGS="+opts.Tags)
	}
	return env
}

func runSuite(opts Options) error {
	args := BuildTestArgs(opts)
	env := BuildTestEnv(opts)

	if opts.DryRun {
		fmt.Printf("would run: go %v with env %v\n", args, env)
		return nil
	}

	cmd := exec.Command("go", args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

const envTemplate = `# Test suite configuration
ENVIRONMENT=staging
BROWSER=chrome
DRIVER=selenium
HEADLESS=false

# Application under test
#BASE_URL=
#API_BASE_URL=

# Timeouts (seconds)
EXPLICIT_WAIT=10
PAGE_LOAD_TIMEOUT=30

# Database fixtures
DB_HOST=localhost
DB_PORT=5432
DB_NAME=test_db
DB_USER=test_user
DB_PASSWORD=test_password

# Test accounts
TEST_USER_EMAIL=test@example.com
TEST_USER_PASSWORD=SecurePass123!

# Feature flags
ENABLE_API_TESTING=true
ENABLE_DATABASE_TESTING=true
ENABLE_EMAIL_TESTING=false
`

func setupEnvCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup-env",
		Usage: "create a .env file with default configuration",
		Action: func(c *cli.Context) error {
			if _, err := os.Stat(".env"); err == nil {
				fmt.Println(".env file already exists")
				return nil
			}
			if err := os.WriteFile(".env", []byte(envTemplate), 0o644); err != nil {
				return fmt.Errorf("create .env: %w", err)
			}
			fmt.Println("created .env file, edit it with your configuration")
			return nil
		},
	}
}
