package runner

import "context"

// Chroot runs every command inside a target filesystem root, the way the
// installer runs package operations against the system being installed.
type Chroot struct {
	Runner  Runner
	Command string // e.g. "chroot" or "arch-chroot"; empty runs commands directly
	Root    string
}

// NewChroot wraps r so commands execute under root.
func NewChroot(r Runner, command, root string) *Chroot {
	return &Chroot{Runner: r, Command: command, Root: root}
}

// Run prefixes c with the chroot command and root.
func (c *Chroot) Run(ctx context.Context, cmd Cmd) (Result, error) {
	if c.Command == "" || c.Root == "" {
		return c.Runner.Run(ctx, cmd)
	}
	wrapped := cmd
	wrapped.Name = c.Command
	wrapped.Args = append([]string{c.Root, cmd.Name}, cmd.Args...)
	return c.Runner.Run(ctx, wrapped)
}

// LookPath resolves the chroot command itself on the host.
func (c *Chroot) LookPath(file string) (string, error) {
	return c.Runner.LookPath(file)
}

// Escalated runs commands through a privilege-escalation wrapper such as sudo.
type Escalated struct {
	Runner  Runner
	Wrapper string // empty runs commands unwrapped
}

// NewEscalated wraps r with wrapper.
func NewEscalated(r Runner, wrapper string) *Escalated {
	return &Escalated{Runner: r, Wrapper: wrapper}
}

// Run prefixes cmd with the wrapper.
func (e *Escalated) Run(ctx context.Context, cmd Cmd) (Result, error) {
	if e.Wrapper == "" {
		return e.Runner.Run(ctx, cmd)
	}
	wrapped := cmd
	wrapped.Name = e.Wrapper
	wrapped.Args = append([]string{cmd.Name}, cmd.Args...)
	return e.Runner.Run(ctx, wrapped)
}

// LookPath delegates to the wrapped runner.
func (e *Escalated) LookPath(file string) (string, error) {
	return e.Runner.LookPath(file)
}
