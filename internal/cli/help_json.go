package cli

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const helpJSONFlag = "help-json"

// FlagDoc describes one command flag in --help-json output.
type FlagDoc struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
	Inherited   bool   `json:"inherited,omitempty"`
}

// CommandDoc is the machine-readable description of a command tree.
type CommandDoc struct {
	Name        string       `json:"name"`
	Use         string       `json:"use"`
	Short       string       `json:"short,omitempty"`
	Long        string       `json:"long,omitempty"`
	Example     string       `json:"example,omitempty"`
	Flags       []FlagDoc    `json:"flags,omitempty"`
	Subcommands []CommandDoc `json:"subcommands,omitempty"`
}

// Describe builds the CommandDoc for cmd and every visible subcommand.
func Describe(cmd *cobra.Command) CommandDoc {
	doc := CommandDoc{
		Name:    cmd.Name(),
		Use:     cmd.UseLine(),
		Short:   cmd.Short,
		Long:    cmd.Long,
		Example: cmd.Example,
	}

	collect := func(inherited bool) func(*pflag.Flag) {
		return func(f *pflag.Flag) {
			if f.Hidden || f.Name == "help" || f.Name == helpJSONFlag {
				return
			}
			doc.Flags = append(doc.Flags, FlagDoc{
				Name:        f.Name,
				Shorthand:   f.Shorthand,
				Type:        f.Value.Type(),
				Default:     f.DefValue,
				Description: f.Usage,
				Inherited:   inherited,
			})
		}
	}
	cmd.LocalFlags().VisitAll(collect(false))
	cmd.InheritedFlags().VisitAll(collect(true))

	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		doc.Subcommands = append(doc.Subcommands, Describe(sub))
	}

	return doc
}

// AddHelpJSONFlag registers --help-json on cmd and all of its children.
func AddHelpJSONFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(helpJSONFlag, false, "Print the command description as JSON")
}

// CheckHelpJSON writes the description of the command named by args when
// args contain --help-json. It runs before Execute so that argument
// validation does not reject a bare "ragcli upload --help-json".
func CheckHelpJSON(root *cobra.Command, args []string, w io.Writer) (bool, error) {
	i := slices.Index(args, "--"+helpJSONFlag)
	if i < 0 {
		return false, nil
	}

	target, _, err := root.Find(args[:i])
	if err != nil {
		target = root
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return true, enc.Encode(Describe(target))
}
