package location

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
)

// StaticPermission answers every request with a fixed status.
type StaticPermission struct {
	Status PermissionStatus
}

func (p StaticPermission) RequestForeground(context.Context) (PermissionStatus, error) {
	return p.Status, nil
}

// PromptPermission asks the user on every request. Nothing is remembered
// between calls.
type PromptPermission struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewPromptPermission(in io.Reader, out io.Writer) *PromptPermission {
	return &PromptPermission{in: bufio.NewReader(in), out: out}
}

func (p *PromptPermission) RequestForeground(ctx context.Context) (PermissionStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}
	if _, err := fmt.Fprint(p.out, "Allow this app to access your location? [y/N]: "); err != nil {
		return PermissionDenied, err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return PermissionDenied, nil
		}
		return PermissionDenied, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return PermissionGranted, nil
	default:
		return PermissionDenied, nil
	}
}
