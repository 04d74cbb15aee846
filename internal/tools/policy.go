package tools

// Profile is one of the four tool-policy profiles. It gates which tool
// *names* are even registered with the Runner; it is independent of the
// shell-command-safety gate (shellgate.go) and the sensitive-path guard
// (sensitivepath.go), which both apply regardless of profile.
type Profile string

const (
	ProfileFull    Profile = "full"
	ProfileCoding  Profile = "coding"
	ProfileMinimal Profile = "minimal"
	ProfileNone    Profile = "none"
)

// coreToolNames are the six core tools, the exact set the "coding" profile
// admits.
var coreToolNames = []string{"shell", "read", "write", "edit", "glob", "grep"}

// allowedNames returns the set of tool names a profile admits. full admits
// every name the caller passes (the complete registered set, including the
// ListDir supplement and any unsupported stubs); coding is the core six;
// minimal is read and glob only; none admits nothing.
func allowedNames(profile Profile, allTools []Tool) map[string]bool {
	set := make(map[string]bool)
	switch profile {
	case ProfileFull:
		for _, t := range allTools {
			set[t.Name()] = true
		}
	case ProfileCoding:
		for _, n := range coreToolNames {
			set[n] = true
		}
	case ProfileMinimal:
		set["read"] = true
		set["glob"] = true
	case ProfileNone:
		// empty: all calls refused
	}
	return set
}

// FilterByProfile returns the subset of tools a profile admits, preserving
// the input order.
func FilterByProfile(profile Profile, allTools []Tool) []Tool {
	allowed := allowedNames(profile, allTools)
	var out []Tool
	for _, t := range allTools {
		if allowed[t.Name()] {
			out = append(out, t)
		}
	}
	return out
}
