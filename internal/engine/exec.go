package engine

import (
	"fmt"
	"strings"

	"github.com/Faultbox/midgard-scene/internal/engine/command"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

// Exec parses and runs one console line and returns the text to show.
func (e *Engine) Exec(line string) (string, error) {
	cmd, err := command.Parse(line, e.cfg.SpawnRadius)
	if err != nil {
		return "", err
	}

	switch c := cmd.(type) {
	case nil:
		return "", nil
	case command.Spawn:
		ids, err := e.InstantiateRandom(c.Name, c.Count, c.Radius)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("spawned %d x %s", len(ids), c.Name), nil
	case command.Delete:
		n := e.DeleteAllEntities(c.Pattern)
		if n == 0 {
			return fmt.Sprintf("no entity matches %q", c.Pattern), nil
		}
		return fmt.Sprintf("deleted %d entities", n), nil
	case command.List:
		return e.list(c.Pattern), nil
	default:
		return "", fmt.Errorf("%w: %s", command.ErrUnknown, cmd)
	}
}

// list renders the entity forest, one name per line indented by depth.
// With a pattern only matching entities are listed, without indentation.
func (e *Engine) list(pattern string) string {
	var sb strings.Builder
	if pattern != "" {
		e.entities.ForAll(func(id uid.ID) bool {
			if name := e.entities.Name(id); command.Match(pattern, name) {
				fmt.Fprintf(&sb, "%s %v\n", name, id)
			}
			return true
		})
		return strings.TrimSuffix(sb.String(), "\n")
	}

	e.entities.ForEachRoot(func(root uid.ID) bool {
		e.entities.Walk(root, func(id uid.ID, depth int) bool {
			fmt.Fprintf(&sb, "%s%s %v\n", strings.Repeat("  ", depth), e.entities.Name(id), id)
			return true
		})
		return true
	})
	return strings.TrimSuffix(sb.String(), "\n")
}
