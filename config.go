package ecs

import (
	"github.com/TheBitDrifter/table"
	"github.com/cogwheelgg/ecs/internal/diag"
)

// Config holds global configuration for the table system, set once at App
// construction and read many times thereafter — the teacher's own
// "set once, read many" style, not a reloadable config file (the core has
// no persisted state).
var Config config = config{
	logger: diag.NewStdLogger(),
}

type config struct {
	tableEvents table.TableEvents
	logger      diag.Logger
	threads     int
}

// SetTableEvents configures the table event callbacks.
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetLogger swaps the diagnostic logger the scheduler, storage and App
// report through.
func (c *config) SetLogger(l diag.Logger) {
	if l == nil {
		l = diag.NopLogger{}
	}
	c.logger = l
}

// Logger returns the currently configured diagnostic logger.
func (c *config) Logger() diag.Logger {
	if c.logger == nil {
		return diag.NopLogger{}
	}
	return c.logger
}
