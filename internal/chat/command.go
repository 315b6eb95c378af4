package chat

import (
	"strings"

	chaterrors "leavehub/internal/chat/errors"
)

// Command is the closed set of verbs the chat surface understands. Anything
// outside this set is rejected at the boundary before touching a service.
type Command string

const (
	CommandHelp    Command = "help"
	CommandRequest Command = "request"
	CommandBalance Command = "balance"
	CommandList    Command = "list"
	CommandPending Command = "pending"
	CommandApprove Command = "approve"
	CommandDeny    Command = "deny"
	CommandCancel  Command = "cancel"
)

var knownCommands = map[Command]struct{}{
	CommandHelp:    {},
	CommandRequest: {},
	CommandBalance: {},
	CommandList:    {},
	CommandPending: {},
	CommandApprove: {},
	CommandDeny:    {},
	CommandCancel:  {},
}

// ParseCommand splits a raw chat message into a verb and its arguments.
// A leading "/pto" or "pto" prefix is tolerated so the same text works as a
// slash command and as a bot mention.
func ParseCommand(text string) (Command, []string, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) > 0 {
		head := strings.ToLower(fields[0])
		if head == "/pto" || head == "pto" {
			fields = fields[1:]
		}
	}
	if len(fields) == 0 {
		return CommandHelp, nil, nil
	}

	cmd := Command(strings.ToLower(fields[0]))
	if _, ok := knownCommands[cmd]; !ok {
		return "", nil, chaterrors.ErrUnknownCommand
	}
	return cmd, fields[1:], nil
}
