package sim

import "time"

type CommandType string

const (
	CmdPause  CommandType = "pause"
	CmdResume CommandType = "resume"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

// PauseCommand freezes the context: ticks keep publishing the last state
// without sampling the host.
type PauseCommand struct{ At time.Time }

func (c PauseCommand) Type() CommandType     { return CmdPause }
func (c PauseCommand) ReceivedAt() time.Time { return c.At }

type ResumeCommand struct{ At time.Time }

func (c ResumeCommand) Type() CommandType     { return CmdResume }
func (c ResumeCommand) ReceivedAt() time.Time { return c.At }
