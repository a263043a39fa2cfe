package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/cmd/gjcli/storage"
	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"
	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/log"
)

type Operator struct {
	ctx     context.Context
	session *gamejolt.Session
	store   *storage.Storage
	out     io.Writer

	// readExtraArg asks the user for a missing argument.
	readExtraArg func(name string) string

	exitCh chan struct{}
}

func NewOperator(ctx context.Context, session *gamejolt.Session, store *storage.Storage, out io.Writer) *Operator {
	operator := &Operator{
		ctx:          ctx,
		session:      session,
		store:        store,
		out:          out,
		readExtraArg: promptExtraArg,
		exitCh:       make(chan struct{}),
	}

	session.HandleAuthenticatedEvent(operator.onAuthenticated)
	session.HandleTrophyEvent(operator.onTrophy)

	return operator
}

func (o *Operator) Complete(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(o.complete(d), d.GetWordBeforeCursor(), true)
}

func (o *Operator) complete(d prompt.Document) []prompt.Suggest {
	args := strings.Split(d.TextBeforeCursor(), " ")

	if len(args) < 2 {
		return []prompt.Suggest{
			{Text: "authenticate", Description: "Log in with a username and game token"},
			{Text: "status", Description: "Show the session state"},
			{Text: "user", Description: "Look up users by name, or by id with --id"},
			{Text: "trophies", Description: "List trophies"},
			{Text: "trophy", Description: "Show one trophy"},
			{Text: "grant", Description: "Mark a trophy as achieved"},
			{Text: "revoke", Description: "Remove an achieved trophy"},
			{Text: "time", Description: "Show the server time"},
			{Text: "history", Description: "Show locally recorded trophy events"},
			{Text: "exit", Description: "Exit the application"},
		}
	}

	if len(args) < 3 {
		switch args[0] {
		case "trophies":
			return []prompt.Suggest{
				{Text: "all", Description: "Every trophy of the game"},
				{Text: "achieved", Description: "Trophies you have"},
				{Text: "unachieved", Description: "Trophies you do not have yet"},
			}
		case "time":
			return []prompt.Suggest{
				{Text: "local", Description: "Convert to the local time zone"},
			}
		case "user":
			return []prompt.Suggest{
				{Text: "--id", Description: "Look up by numeric id"},
			}
		case "authenticate":
			return []prompt.Suggest{
				{Text: "--force", Description: "Re-authenticate even if already logged in"},
			}
		}
	}

	return nil
}

func (o *Operator) Execute(s string) {
	args := strings.Fields(s)
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "authenticate":
		o.handleAuthenticate(args)
	case "status":
		o.handleStatus()
	case "user":
		o.handleUsers(args)
	case "trophies":
		o.handleListTrophies(args)
	case "trophy":
		o.handleTrophy(args)
	case "grant":
		o.handleGrant(args)
	case "revoke":
		o.handleRevoke(args)
	case "time":
		o.handleTime(args)
	case "history":
		o.handleHistory(args)
	case "exit":
		o.exit()
	default:
		o.printf("Unknown command: %s\n", s)
	}
}

func (o *Operator) Wait() <-chan struct{} {
	return o.exitCh
}

func (o *Operator) exit() {
	select {
	case <-o.exitCh:
	default:
		close(o.exitCh)
	}
}

func (o *Operator) handleAuthenticate(args []string) {
	forced := false
	positional := make([]string, 0, 2)
	for _, arg := range args[1:] {
		if arg == "--force" {
			forced = true
			continue
		}
		positional = append(positional, arg)
	}

	if len(positional) < 1 {
		o.printf("Usage: authenticate <username> [token] [--force]\n")
		return
	}
	username := positional[0]
	token := ""
	if len(positional) > 1 {
		token = positional[1]
	} else {
		token = o.readExtraArg("token")
	}

	if err := o.session.Authenticate(o.ctx, username, token, forced); err != nil {
		o.printf("Authentication failed: %s\n", err.Error())
		return
	}
}

func (o *Operator) handleStatus() {
	state := o.session.State()
	if state != gamejolt.StateAuthenticated {
		o.printf("Session is %s.\n", state)
		return
	}
	o.printf("Session is %s as %q.\n", state, o.session.Credential().Username)
}

func (o *Operator) handleUsers(args []string) {
	if len(args) < 2 {
		o.printf("Usage: user <username>[,<username>...] | user --id <id>[,<id>...]\n")
		return
	}

	var (
		users []gamejolt.UserRecord
		err   error
	)
	if args[1] == "--id" {
		if len(args) < 3 {
			o.printf("Usage: user --id <id>[,<id>...]\n")
			return
		}
		ids, parseErr := parseIDList(args[2])
		if parseErr != nil {
			o.printf("Invalid user id: %s\n", parseErr.Error())
			return
		}
		users, err = o.session.FetchUsersByID(o.ctx, ids...)
	} else {
		users, err = o.session.FetchUsers(o.ctx, splitList(strings.Join(args[1:], ","))...)
	}
	if err != nil {
		o.printf("Failed to fetch users: %s\n", err.Error())
		return
	}

	o.renderUsers(users)
}

func (o *Operator) handleListTrophies(args []string) {
	req := gamejolt.ListTrophiesRequest{All: true}
	if len(args) > 1 {
		switch args[1] {
		case "all":
		case "achieved":
			req = gamejolt.ListTrophiesRequest{Achieved: true}
		case "unachieved":
			req = gamejolt.ListTrophiesRequest{Achieved: false}
		default:
			o.printf("Usage: trophies [all|achieved|unachieved]\n")
			return
		}
	}

	trophies, err := o.session.ListTrophies(o.ctx, req)
	if err != nil {
		o.printf("Failed to list trophies: %s\n", err.Error())
		return
	}

	o.renderTrophies(trophies)
}

func (o *Operator) handleTrophy(args []string) {
	trophyID, ok := o.trophyIDArg(args, "trophy")
	if !ok {
		return
	}

	trophy, err := o.session.FetchTrophy(o.ctx, trophyID)
	if err != nil {
		o.printf("Failed to fetch trophy: %s\n", err.Error())
		return
	}

	o.renderTrophies([]gamejolt.TrophyRecord{trophy})
}

func (o *Operator) handleGrant(args []string) {
	trophyID, ok := o.trophyIDArg(args, "grant")
	if !ok {
		return
	}

	if err := o.session.GrantTrophy(o.ctx, trophyID); err != nil {
		o.printf("Failed to grant trophy %d: %s\n", trophyID, err.Error())
	}
}

func (o *Operator) handleRevoke(args []string) {
	trophyID, ok := o.trophyIDArg(args, "revoke")
	if !ok {
		return
	}

	if err := o.session.RevokeTrophy(o.ctx, trophyID); err != nil {
		o.printf("Failed to revoke trophy %d: %s\n", trophyID, err.Error())
	}
}

func (o *Operator) handleTime(args []string) {
	local := len(args) > 1 && args[1] == "local"

	ts, err := o.session.ServerTime(o.ctx, local)
	if err != nil {
		o.printf("Failed to fetch server time: %s\n", err.Error())
		return
	}
	o.printf("Server time: %s\n", ts.Format("2006-01-02 15:04:05 MST"))
}

func (o *Operator) handleHistory(args []string) {
	var username *string
	if len(args) > 1 {
		username = &args[1]
	}

	events, err := o.store.ListTrophyEvents(o.ctx, username, &storage.ListOptions{Limit: storage.MaxLimit})
	if err != nil {
		o.printf("Failed to read history: %s\n", err.Error())
		return
	}
	total, err := o.store.CountTrophyEvents(o.ctx, username)
	if err != nil {
		o.printf("Failed to read history: %s\n", err.Error())
		return
	}

	o.renderHistory(events)
	o.printf("Showing %d of %d recorded events.\n", len(events), total)
}

func (o *Operator) onAuthenticated(ctx context.Context, notif gamejolt.AuthenticatedNotification) {
	o.printf("Authentication successful!\n")
	o.printf("Welcome, %q!\n", notif.Username)
}

// onTrophy records the confirmed event. A failing store must not hide the
// server-side change, so errors are only reported.
func (o *Operator) onTrophy(ctx context.Context, notif gamejolt.TrophyNotification) {
	switch notif.Kind {
	case gamejolt.TrophyGrant:
		o.printf("Trophy %d granted.\n", notif.TrophyID)
	case gamejolt.TrophyRevoke:
		o.printf("Trophy %d revoked.\n", notif.TrophyID)
	}

	if err := o.store.RecordTrophyEvent(ctx, notif); err != nil {
		log.FromContext(ctx).Error("failed to record trophy event", "error", err, "trophyId", notif.TrophyID)
		o.printf("Warning: trophy event not saved to history: %s\n", err.Error())
	}
}

func (o *Operator) trophyIDArg(args []string, command string) (int64, bool) {
	if len(args) < 2 {
		o.printf("Usage: %s <trophy_id>\n", command)
		return 0, false
	}

	trophyID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || trophyID <= 0 {
		o.printf("Invalid trophy id: %s\n", args[1])
		return 0, false
	}
	return trophyID, true
}

func (o *Operator) printf(format string, args ...any) {
	fmt.Fprintf(o.out, format, args...)
}

func promptExtraArg(name string) string {
	promptPrefix := fmt.Sprintf("{%s}>>> ", name)
	return prompt.Input(promptPrefix, emptyCompleter,
		prompt.OptionTitle("gjcli"),
		prompt.OptionPrefixTextColor(prompt.Yellow),
	)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func parseIDList(s string) ([]int64, error) {
	parts := splitList(s)
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
