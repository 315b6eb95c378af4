package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	chaterrors "leavehub/internal/chat/errors"
	"leavehub/internal/request"
	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/contextutil"
	"leavehub/internal/user"

	"go.uber.org/zap"
)

const helpText = "Commands:\n" +
	"  pto request <category> <type> <start> <end> [reason] - submit a leave request\n" +
	"  pto balance - show your remaining days per leave type\n" +
	"  pto list [status] - show your requests\n" +
	"  pto pending - show requests waiting on your approval\n" +
	"  pto approve <id> - approve a request\n" +
	"  pto deny <id> - deny a request\n" +
	"  pto cancel <id> - cancel your request\n" +
	"  pto help - this message"

type Service interface {
	Handle(ctx context.Context, msg InboundMessage) (Reply, error)
}

type commandFunc func(ctx context.Context, actor user.UserResponse, args []string) (string, error)

type service struct {
	users    user.Service
	requests request.Service
	dispatch map[Command]commandFunc
	logger   *zap.Logger
}

func NewService(users user.Service, requests request.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("chat.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chat.service")
	}
	s := &service{users: users, requests: requests, logger: l}
	s.dispatch = map[Command]commandFunc{
		CommandHelp:    s.help,
		CommandRequest: s.request,
		CommandBalance: s.balance,
		CommandList:    s.list,
		CommandPending: s.pending,
		CommandApprove: s.approve,
		CommandDeny:    s.deny,
		CommandCancel:  s.cancel,
	}
	return s
}

// Handle resolves the sender, parses the verb, and routes it through the
// dispatch table. Domain refusals come back as reply text; only store and
// internal failures surface as errors.
func (s *service) Handle(ctx context.Context, msg InboundMessage) (Reply, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	actor, err := s.users.GetOrProvision(ctx, msg.ExternalUserID, msg.DisplayName)
	if err != nil {
		return Reply{}, err
	}

	cmd, args, err := ParseCommand(msg.Text)
	if err != nil {
		return Reply{Text: "I did not understand that.\n" + helpText}, nil
	}

	log.Debug("chat command",
		zap.String("external_user_id", msg.ExternalUserID),
		zap.String("command", string(cmd)),
	)

	text, err := s.dispatch[cmd](ctx, actor, args)
	if err != nil {
		if isInternal(err) {
			return Reply{}, err
		}
		return Reply{Text: refusalText(err)}, nil
	}
	return Reply{Text: text}, nil
}

func (s *service) help(_ context.Context, _ user.UserResponse, _ []string) (string, error) {
	return helpText, nil
}

func (s *service) request(ctx context.Context, actor user.UserResponse, args []string) (string, error) {
	if len(args) < 4 {
		return "", chaterrors.ErrBadArguments
	}

	resp, err := s.requests.Submit(ctx, actor.ID, request.SubmitRequest{
		Category:  args[0],
		Type:      args[1],
		StartDate: args[2],
		EndDate:   args[3],
		Reason:    strings.Join(args[4:], " "),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Request %s submitted: %s %s, %s to %s (%d business days), status %s.",
		resp.ID, resp.Category, resp.Type, resp.StartDate, resp.EndDate, resp.DaysCount, resp.Status), nil
}

func (s *service) balance(ctx context.Context, actor user.UserResponse, _ []string) (string, error) {
	balances, err := s.requests.Balance(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	if len(balances) == 0 {
		return "No leave types are configured.", nil
	}

	var b strings.Builder
	b.WriteString("Your balance:\n")
	for _, entry := range balances {
		if entry.Unlimited {
			fmt.Fprintf(&b, "  %s/%s: unlimited (%d days used)\n", entry.Category, entry.Type, entry.UsedDays)
			continue
		}
		remaining := 0
		if entry.RemainingDays != nil {
			remaining = *entry.RemainingDays
		}
		fmt.Fprintf(&b, "  %s/%s: %d days left (%d used)\n", entry.Category, entry.Type, remaining, entry.UsedDays)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *service) list(ctx context.Context, actor user.UserResponse, args []string) (string, error) {
	status := ""
	if len(args) > 0 {
		status = strings.ToUpper(args[0])
	}

	requests, err := s.requests.List(ctx, actor.ID, false, status)
	if err != nil {
		return "", err
	}
	if len(requests) == 0 {
		return "You have no leave requests.", nil
	}
	return formatRequestList("Your requests:", requests), nil
}

func (s *service) pending(ctx context.Context, actor user.UserResponse, _ []string) (string, error) {
	requests, err := s.requests.PendingApprovals(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	if len(requests) == 0 {
		return "Nothing is waiting on your approval.", nil
	}
	return formatRequestList("Waiting on you:", requests), nil
}

func (s *service) approve(ctx context.Context, actor user.UserResponse, args []string) (string, error) {
	if len(args) != 1 {
		return "", chaterrors.ErrBadArguments
	}
	resp, err := s.requests.Approve(ctx, actor.ID, args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Request %s approved.", resp.ID), nil
}

func (s *service) deny(ctx context.Context, actor user.UserResponse, args []string) (string, error) {
	if len(args) != 1 {
		return "", chaterrors.ErrBadArguments
	}
	resp, err := s.requests.Deny(ctx, actor.ID, args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Request %s denied.", resp.ID), nil
}

func (s *service) cancel(ctx context.Context, actor user.UserResponse, args []string) (string, error) {
	if len(args) != 1 {
		return "", chaterrors.ErrBadArguments
	}
	resp, err := s.requests.Cancel(ctx, actor.ID, args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Request %s cancelled.", resp.ID), nil
}

func formatRequestList(header string, requests []request.RequestResponse) string {
	var b strings.Builder
	b.WriteString(header)
	for _, r := range requests {
		fmt.Fprintf(&b, "\n  %s: %s/%s %s to %s (%d days) [%s]",
			r.ID, r.Category, r.Type, r.StartDate, r.EndDate, r.DaysCount, r.Status)
	}
	return b.String()
}

func refusalText(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong."
}

func isInternal(err error) bool {
	switch apperror.CodeOf(err) {
	case apperror.CodeStoreError, apperror.CodeInternalError, apperror.CodeServiceUnavailable:
		return true
	}
	return false
}
