package commands

// Builtin returns a registry holding every shell builtin with its manual
// page.
func Builtin() *Registry {
	r := NewRegistry()
	groups := [][]Command{
		navigationCommands(),
		fileCommands(),
		textCommands(),
		searchCommands(),
		userCommands(),
		systemCommands(),
	}
	for _, group := range groups {
		for _, cmd := range group {
			if cmd.Manual == "" {
				cmd.Manual = manuals[cmd.Name]
			}
			// Names are static and every handler is set.
			_ = r.Register(cmd)
		}
	}
	return r
}
