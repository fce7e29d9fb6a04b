package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"gamestore/internal/controllers"
	. "gamestore/internal/models"
	"gamestore/internal/services"
	"gamestore/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

// Session is the console's login state. The zero value is a guest.
type Session struct {
	Principal services.Principal
	Token     string
}

func (s Session) LoggedIn() bool {
	return s.Principal.Authenticated()
}

type handler func(ctx context.Context, args []string) error

type command struct {
	name       string
	usage      string
	summary    string
	minArgs    int
	permission *services.Permission
	run        handler
}

// Console is the interactive storefront. It reads one command per line and writes
// human-readable results.
type Console struct {
	Prompt string

	controllers controllers.Controllers
	policy      *services.PolicyService
	out         io.Writer
	session     Session
	commands    map[string]command
	order       []string
	log         logger.Logger
}

func New(controllers controllers.Controllers, policy *services.PolicyService, out io.Writer) *Console {
	c := &Console{
		controllers: controllers,
		policy:      policy,
		out:         out,
		commands:    make(map[string]command),
		log:         logger.New("console"),
	}
	c.registerCommands()
	return c
}

func (c *Console) Session() Session {
	return c.session
}

// Run executes commands from in until it is exhausted, a quit command is read or ctx is
// cancelled.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	log := c.log.Function("Run")

	c.println("Welcome to the Game Store!")
	c.println("Type help for a list of commands.")

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if c.Prompt != "" {
			c.printf("%s", c.Prompt)
		}
		if !scanner.Scan() {
			break
		}

		quit, err := c.Execute(ctx, scanner.Text())
		if err != nil {
			c.println("Error: " + err.Error())
		}
		if quit {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return log.Err("failed to read input", err)
	}
	return nil
}

// Execute runs a single command line and reports whether the console should exit.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	fields, err := utils.SplitFields(line)
	if err != nil {
		return false, err
	}
	if len(fields) == 0 {
		return false, nil
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	if name == "quit" || name == "exit" {
		c.println("Exiting...")
		return true, nil
	}

	cmd, ok := c.commands[name]
	if !ok {
		c.printf("Unknown command %q. Type help for a list of commands.\n", name)
		return false, nil
	}

	if len(args) < cmd.minArgs {
		return false, fmt.Errorf("%w: usage: %s", ErrInvalidArgument, cmd.usage)
	}

	if cmd.permission != nil {
		if err := c.policy.AuthorizePrincipal(c.session.Principal, *cmd.permission); err != nil {
			return false, err
		}
	}

	return false, cmd.run(ctx, args)
}

func (c *Console) register(cmd command) {
	c.commands[cmd.name] = cmd
	c.order = append(c.order, cmd.name)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(line string) {
	fmt.Fprintln(c.out, line)
}
