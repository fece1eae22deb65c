package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/deploymenttheory/go-blockidx/pkg/services"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool
	NoColor      bool

	// Progress reporting
	ProgressCallback func(message string, percent int)

	// Services used by the command handlers
	Services *services.ServiceFactory

	// Payload goes to Stdout, status messages to Stderr
	Stdout io.Writer
	Stderr io.Writer
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:      context.Background(),
		OutputFormat: "table",
		Services:     services.NewServiceFactoryFromConfig(nil),
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

// WithCancel creates a cancellable context
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Context)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// Index returns the index service
func (c *Context) Index() services.IndexService {
	if c.Services == nil {
		c.Services = services.NewServiceFactoryFromConfig(nil)
	}
	return c.Services.IndexService()
}

// Out returns the payload writer
func (c *Context) Out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *Context) status() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

func (c *Context) paint(attr color.Attribute) *color.Color {
	p := color.New(attr)
	if c.NoColor {
		p.DisableColor()
	}
	return p
}

// Log outputs a message based on verbosity settings
func (c *Context) Log(message string) {
	if !c.Quiet && c.Verbose {
		c.paint(color.FgCyan).Fprintln(c.status(), message)
	}
}

// Success reports a completed operation unless quiet
func (c *Context) Success(message string) {
	if !c.Quiet {
		c.paint(color.FgGreen).Fprintln(c.status(), message)
	}
}

// Warn reports a recoverable problem unless quiet
func (c *Context) Warn(message string) {
	if !c.Quiet {
		c.paint(color.FgYellow).Fprintln(c.status(), "Warning: "+message)
	}
}

// Error outputs an error message unless quiet
func (c *Context) Error(message string) {
	if !c.Quiet {
		c.paint(color.FgRed).Fprintln(c.status(), "Error: "+message)
	}
}

// Logf formats and logs a verbose message
func (c *Context) Logf(format string, args ...interface{}) {
	c.Log(fmt.Sprintf(format, args...))
}
