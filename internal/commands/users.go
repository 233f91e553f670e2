package commands

import (
	"context"
	"strings"

	"github.com/GriffinCanCode/termquest/internal/identity"
	"github.com/GriffinCanCode/termquest/internal/shell/parser"
)

func userCommands() []Command {
	return []Command{
		{Name: "whoami", Summary: "Print the current user name", Usage: "whoami", Category: CategoryUsers,
			Keywords: []string{"user", "identity"}, Run: runWhoami},
		{Name: "id", Summary: "Print user and group identity", Usage: "id [user]", Category: CategoryUsers,
			Keywords: []string{"user", "group", "identity"}, Run: runID},
		{Name: "groups", Summary: "Print the groups a user is in", Usage: "groups [user]", Category: CategoryUsers,
			Keywords: []string{"group", "membership"}, Run: runGroups},
		{Name: "sudo", Summary: "Run a command as root", Usage: "sudo command [args...]", Category: CategoryPermissions,
			Keywords: []string{"root", "admin", "privilege", "superuser", "permission"}, Run: runSudo},
		{Name: "useradd", Summary: "Create a user account", Usage: "useradd [-G group,...] name", Category: CategoryUsers,
			Keywords: []string{"user", "account", "create"}, Run: runUseradd},
		{Name: "usermod", Summary: "Change a user's groups", Usage: "usermod [-a] -G group,... name", Category: CategoryUsers,
			Keywords: []string{"user", "account", "group", "modify"}, Run: runUsermod},
		{Name: "userdel", Summary: "Delete a user account", Usage: "userdel [-r] name", Category: CategoryUsers,
			Keywords: []string{"user", "account", "delete", "remove"}, Run: runUserdel},
	}
}

func runWhoami(_ context.Context, inv *Invocation) Result {
	return OK(inv.Session.Username())
}

func lookupUser(inv *Invocation, cmd string) (identity.User, *Result) {
	name := inv.Session.Username()
	if len(inv.Args) > 0 {
		name = inv.Args[0]
	}
	u, ok := inv.FS().Users().User(name)
	if !ok {
		r := Failf(cmd, "'%s': no such user", name)
		return u, &r
	}
	return u, nil
}

func runID(_ context.Context, inv *Invocation) Result {
	u, fail := lookupUser(inv, "id")
	if fail != nil {
		return *fail
	}
	groups := append([]string{u.PrimaryGroup}, u.Supplemental...)
	return OK("uid=" + u.Name + " gid=" + u.PrimaryGroup + " groups=" + strings.Join(groups, ","))
}

func runGroups(_ context.Context, inv *Invocation) Result {
	u, fail := lookupUser(inv, "groups")
	if fail != nil {
		return *fail
	}
	groups := append([]string{u.PrimaryGroup}, u.Supplemental...)
	return OK(strings.Join(groups, " "))
}

// runSudo re-parses the text after "sudo" so the inner command keeps its
// own flags, checks the denylist and runs it as root.
func runSudo(ctx context.Context, inv *Invocation) Result {
	rest := parser.Rest(inv.Raw)
	if rest == "" {
		return Failf("sudo", "usage: sudo command [args...]")
	}
	if err := identity.CheckElevation(parser.Tokenize(rest), inv.Session.Cwd()); err != nil {
		return Failf("sudo", "%v", err)
	}
	inner, ok := parser.Parse(rest).(*parser.Command)
	if !ok {
		return Failf("sudo", "cannot run '%s'", rest)
	}
	if inv.Registry() == nil {
		return Failf("sudo", "%s: command not found", inner.Name)
	}

	var res Result
	inv.Session.Elevate(func() {
		sub := &Invocation{
			Name:       inner.Name,
			Args:       inner.Args,
			Flags:      inner.Flags,
			Raw:        inner.Raw,
			Stdin:      inv.Stdin,
			Session:    inv.Session,
			History:    inv.History,
			MaxPattern: inv.MaxPattern,
		}
		r, found := inv.Registry().Execute(ctx, sub)
		if !found {
			r = Failf("sudo", "%s: command not found", inner.Name)
		}
		res = r
	})
	return res
}

// groupList reads the -G argument, given either as "-G a,b name" or as
// "--groups=a,b name". It returns the groups and the remaining arguments.
func groupList(inv *Invocation) ([]string, []string, bool) {
	if v, ok := inv.Flags.Value("groups"); ok {
		return splitGroups(v), inv.Args, true
	}
	if inv.Flags.Has("G") {
		if len(inv.Args) == 0 {
			return nil, nil, false
		}
		return splitGroups(inv.Args[0]), inv.Args[1:], true
	}
	return nil, inv.Args, true
}

func splitGroups(s string) []string {
	var out []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func runUseradd(_ context.Context, inv *Invocation) Result {
	groups, rest, ok := groupList(inv)
	if !ok {
		return Failf("useradd", "option requires an argument -- 'G'")
	}
	if len(rest) != 1 {
		return Failf("useradd", "usage: useradd [-G group,...] name")
	}
	if _, err := inv.FS().AddUser(inv.Actor(), rest[0], groups); err != nil {
		return Fail("useradd", err)
	}
	return OK("")
}

func runUsermod(_ context.Context, inv *Invocation) Result {
	groups, rest, ok := groupList(inv)
	if !ok || groups == nil {
		return Failf("usermod", "usage: usermod [-a] -G group,... name")
	}
	if len(rest) != 1 {
		return Failf("usermod", "usage: usermod [-a] -G group,... name")
	}
	appendMode := inv.Flags.Any("a", "append")
	if _, err := inv.FS().ModifyUser(inv.Actor(), rest[0], groups, appendMode); err != nil {
		return Fail("usermod", err)
	}
	return OK("")
}

func runUserdel(_ context.Context, inv *Invocation) Result {
	if len(inv.Args) != 1 {
		return Failf("userdel", "usage: userdel [-r] name")
	}
	removeHome := inv.Flags.Any("r", "remove")
	if err := inv.Session.DeleteUser(inv.Args[0], removeHome); err != nil {
		return Fail("userdel", err)
	}
	return OK("")
}
