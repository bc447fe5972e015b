package lavalink

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one Lavalink server the backend connects to.
type Node struct {
	Name     string
	Address  string
	Password string
	Secure   bool
}

// ParseNodes reads nodes in the form "name|host:port|password|secure",
// separated by ";". The secure flag is optional and defaults to false.
func ParseNodes(s string) ([]Node, error) {
	var nodes []Node
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, "|")
		if len(fields) < 3 || len(fields) > 4 {
			return nil, fmt.Errorf("invalid lavalink node %q: want name|address|password[|secure]", part)
		}
		n := Node{
			Name:     strings.TrimSpace(fields[0]),
			Address:  strings.TrimSpace(fields[1]),
			Password: fields[2],
		}
		if n.Name == "" || n.Address == "" {
			return nil, fmt.Errorf("invalid lavalink node %q: name and address are required", part)
		}
		if len(fields) == 4 {
			secure, err := strconv.ParseBool(strings.TrimSpace(fields[3]))
			if err != nil {
				return nil, fmt.Errorf("invalid lavalink node %q: %w", part, err)
			}
			n.Secure = secure
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
