// Package command parses the console command language:
//
//	spawn <name> [count] [radius]
//	delete <pattern>[*]
//	list [pattern]
//
// Arguments are split with shell quoting rules, so names may contain
// spaces when quoted.
package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

var (
	// ErrUsage is returned for malformed arguments.
	ErrUsage = errors.New("usage")

	// ErrUnknown is returned for an unrecognised verb.
	ErrUnknown = errors.New("unknown command")
)

// Command is a parsed console command. String returns its canonical form.
type Command interface {
	String() string
}

// Spawn places Count instances of the named asset at random positions
// within Radius of the origin.
type Spawn struct {
	Name   string
	Count  int
	Radius float32
}

func (c Spawn) String() string {
	return fmt.Sprintf("spawn %s %d %g", strconv.Quote(c.Name), c.Count, c.Radius)
}

// Delete removes entities whose name matches Pattern. A trailing '*'
// matches by prefix.
type Delete struct {
	Pattern string
}

func (c Delete) String() string { return "delete " + strconv.Quote(c.Pattern) }

// List prints the entities matching Pattern, or all of them.
type List struct {
	Pattern string
}

func (c List) String() string {
	if c.Pattern == "" {
		return "list"
	}
	return "list " + strconv.Quote(c.Pattern)
}

// Parse parses one console line. Blank lines yield a nil Command and no
// error. defaultRadius is used when spawn omits its radius.
func Parse(line string, defaultRadius float32) (Command, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil, nil
	}

	verb, args := strings.ToLower(args[0]), args[1:]
	switch verb {
	case "spawn":
		return parseSpawn(args, defaultRadius)
	case "delete":
		if len(args) != 1 || args[0] == "" {
			return nil, fmt.Errorf("%w: delete <pattern>[*]", ErrUsage)
		}
		return Delete{Pattern: args[0]}, nil
	case "list":
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: list [pattern]", ErrUsage)
		}
		var c List
		if len(args) == 1 {
			c.Pattern = args[0]
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, verb)
	}
}

func parseSpawn(args []string, defaultRadius float32) (Command, error) {
	if len(args) < 1 || len(args) > 3 || args[0] == "" {
		return nil, fmt.Errorf("%w: spawn <name> [count] [radius]", ErrUsage)
	}
	c := Spawn{Name: args[0], Count: 1, Radius: defaultRadius}

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: count must be a positive integer, got %q", ErrUsage, args[1])
		}
		c.Count = n
	}
	if len(args) > 2 {
		r, err := strconv.ParseFloat(args[2], 32)
		if err != nil || r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("%w: radius must be a non-negative number, got %q", ErrUsage, args[2])
		}
		c.Radius = float32(r)
	}
	return c, nil
}

// Match reports whether name matches pattern. A trailing '*' matches any
// name with the preceding prefix; otherwise the match is exact.
func Match(pattern, name string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(name, prefix)
	}
	return name == pattern
}
